package noise

import (
	"fmt"
	"sync"
)

// InjectionJob is one simulated event. Jobs must not share stations, every
// trace is written by the single worker that owns its job.
type InjectionJob struct {
	Event    Event
	Station  Station
	Detector Detector
}

func worker(id int, inj *Injector, jobs <-chan InjectionJob, failed chan<- InjectionJob) {
	for job := range jobs {
		if !inj.runJob(id, job) {
			failed <- job
		}
	}
}

func (inj *Injector) runJob(workerID int, job InjectionJob) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("worker %d recovered from panic: %v", workerID, r)
			inj.log().Error(errMessage.Error())
			ok = false
		}
	}()

	inj.InjectNoise(job.Event, job.Station, job.Detector)
	return true
}

// InjectAll injects noise into every job using numWorkers goroutines and
// returns the number of jobs that failed.
func InjectAll(inj *Injector, jobs []InjectionJob, numWorkers int) int {
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobsCh := make(chan InjectionJob, len(jobs))
	failed := make(chan InjectionJob, len(jobs))

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, inj, jobsCh, failed)
		}(w)
	}

	for _, job := range jobs {
		jobsCh <- job
	}
	close(jobsCh)
	wg.Wait()
	close(failed)

	nFailed := 0
	for job := range failed {
		if job.Event != nil {
			message := fmt.Sprintf("noise not added to event %d", job.Event.ID())
			inj.log().Error(message)
		}
		nFailed++
	}
	return nFailed
}
