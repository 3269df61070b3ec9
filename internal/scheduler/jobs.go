package scheduler

import (
	"context"
	"log"
	"time"

	"opportunity-finder/internal/models"
)

// Reporter is what ReportJob runs; satisfied by services.ReportService.
type Reporter interface {
	Run(ctx context.Context) (*models.Stats, error)
}

// ReportJob runs the stats report with a bounded timeout.
type ReportJob struct {
	reporter Reporter
	timeout  time.Duration
}

// NewReportJob creates a ReportJob.
func NewReportJob(r Reporter) *ReportJob {
	return &ReportJob{reporter: r, timeout: 30 * time.Second}
}

// Run implements cron.Job (github.com/robfig/cron/v3).
func (j *ReportJob) Run() {
	log.Println("INFO: [Scheduler] running report job...")
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if _, err := j.reporter.Run(ctx); err != nil {
		log.Printf("ERROR: [Scheduler] report job failed: %v", err)
		return
	}
	log.Println("INFO: [Scheduler] report job finished.")
}
