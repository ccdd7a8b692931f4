package voxeltrace

import (
	"runtime"
	"sync"
)

// EstimateCoverage fires trials primary rays through random pixel positions and returns
// the fraction that hits a voxel. Seeds are fixed per worker, so the answer is reproducible
// for a given worker count. It returns 0 without a scene or camera.
func (r *Renderer) EstimateCoverage(trials int) Real {
	if trials <= 0 || r.scene == nil || r.camera == nil {
		return 0
	}
	cam := newCameraBasis(*r.camera, r.w, r.h)
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	per, rem := trials/workers, trials%workers
	var wg sync.WaitGroup
	hitsCh := make(chan int, workers)

	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(wid, n int) {
			defer wg.Done()
			// independent RNG per worker
			rng := NewRng(uint64(wid+1) * 0x9e3779b97f4a7c15)

			localHits := 0
			for i := 0; i < n; i++ {
				fx := rng.NextF64() * Real(r.w)
				fy := rng.NextF64() * Real(r.h)
				x, y := min(int(fx), r.w-1), min(int(fy), r.h-1)
				if _, ok := r.tracer.nearest(cam.primaryRay(x, y, fx-Real(x), fy-Real(y))); ok {
					localHits++
				}
			}
			hitsCh <- localHits
		}(w, n)
	}

	wg.Wait()
	close(hitsCh)

	totalHits := 0
	for h := range hitsCh {
		totalHits += h
	}
	return Real(totalHits) / Real(trials)
}
