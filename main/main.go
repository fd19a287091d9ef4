package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/pinslot"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1
	type payload struct {
		Vals [8]int64
		Name string
	}
	for i := 0; i < 10000; i++ {
		pinslot.Scoped(func(sl pinslot.Slot[payload]) {
			ref := sl.Emplace(pinslot.ByRaw(func(dst *payload) {
				dst.Vals[0] = int64(i)
				dst.Name = "profiling"
			}))
			ref.Mut().Vals[1] = ref.Get().Vals[0] + 1
			ref.Drop()
		})
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
