package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"match-histogram/internal/filter"
	"match-histogram/internal/logger"
	"match-histogram/internal/models"
	"match-histogram/internal/opencv/safe"
)

// Job is one unit of work: derive curves from Source against Reference and
// apply them to Base (Source itself when Base is empty), writing the result
// to Output.
type Job struct {
	ID        string
	Source    string
	Reference string
	Base      string
	Output    string
	Options   filter.Options
}

// Result carries a finished job's output frame for callers that want to
// display it in addition to the file written to disk.
type Result struct {
	Job      Job
	Frame    *models.Frame
	Duration time.Duration
}

// Coordinator owns the pipeline stages and drives jobs through
// load, convert, filter, save. It holds no per-frame state, so any number
// of jobs may run concurrently.
type Coordinator struct {
	loader    *Loader
	processor *Processor
	saver     *Saver
	log       logger.Logger
}

func NewCoordinator(log logger.Logger) *Coordinator {
	return &Coordinator{
		loader:    NewLoader(log),
		processor: NewProcessor(log),
		saver:     NewSaver(log),
		log:       log,
	}
}

// Run executes a single job.
func (c *Coordinator) Run(job Job) (*Result, error) {
	startTime := time.Now()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	src, err := c.loader.Load(job.Source)
	if err != nil {
		return nil, c.fail(job, err)
	}
	defer src.Close()

	ref, err := c.loader.Load(job.Reference)
	if err != nil {
		return nil, c.fail(job, err)
	}
	defer ref.Close()

	var base *safe.Mat
	if job.Base != "" {
		base, err = c.loader.Load(job.Base)
		if err != nil {
			return nil, c.fail(job, err)
		}
		defer base.Close()
	}

	frame, err := c.processor.Process(job.Options, src, ref, base)
	if err != nil {
		return nil, c.fail(job, err)
	}

	if job.Output != "" {
		if err := c.saver.Save(job.Output, frame); err != nil {
			return nil, c.fail(job, err)
		}
	}

	duration := time.Since(startTime)
	c.log.Info("Coordinator", "job finished", map[string]interface{}{
		"job":      job.ID,
		"output":   job.Output,
		"duration": duration.String(),
	})

	return &Result{Job: job, Frame: frame, Duration: duration}, nil
}

// RunBatch executes jobs on a bounded worker pool and returns per-job
// errors, nil entries for successes. The engine is pure per frame, so jobs
// share nothing but the stages.
func (c *Coordinator) RunBatch(jobs []Job, workers int) []error {
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, len(jobs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()

			_, err := c.Run(job)
			errs[i] = err
		}(i, job)
	}

	wg.Wait()
	return errs
}

func (c *Coordinator) fail(job Job, err error) error {
	c.log.Error("Coordinator", err, map[string]interface{}{
		"job":    job.ID,
		"source": job.Source,
	})
	return fmt.Errorf("job %s: %w", job.ID, err)
}
