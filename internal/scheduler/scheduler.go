package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs background jobs on cron schedules (with a seconds field).
type Scheduler struct {
	cron      *cron.Cron
	reportJob *ReportJob
}

// NewScheduler registers the report job on reportCronSpec. An empty spec
// leaves the job unscheduled; an invalid one is an error.
func NewScheduler(reporter Reporter, reportCronSpec string) (*Scheduler, error) {
	// a slow report must not overlap the next tick
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	reportJob := NewReportJob(reporter)

	if reportCronSpec != "" {
		if _, err := c.AddJob(reportCronSpec, reportJob); err != nil {
			return nil, fmt.Errorf("cannot schedule report job (spec: %s): %w", reportCronSpec, err)
		}
		log.Printf("INFO: [Scheduler] report job registered, schedule: %s", reportCronSpec)
	} else {
		log.Println("WARN: [Scheduler] no cron spec for the report job, it will not be scheduled.")
	}

	return &Scheduler{cron: c, reportJob: reportJob}, nil
}

// Entries returns the number of scheduled jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("INFO: [Scheduler] started.")
}

// Stop waits up to 10s for running jobs to finish.
func (s *Scheduler) Stop() {
	log.Println("INFO: [Scheduler] stopping...")
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		log.Println("INFO: [Scheduler] stopped, all running jobs finished.")
	case <-time.After(10 * time.Second):
		log.Println("WARN: [Scheduler] stop timed out, jobs may still be running.")
	}
}
