package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"opportunity-finder/internal/models"
)

type countingReporter struct {
	runs atomic.Int32
	err  error
}

func (r *countingReporter) Run(ctx context.Context) (*models.Stats, error) {
	r.runs.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("job context has no deadline")
	}
	return &models.Stats{}, r.err
}

func TestNewSchedulerInvalidSpec(t *testing.T) {
	if _, err := NewScheduler(&countingReporter{}, "not a cron spec"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
	// five fields is invalid when seconds are required
	if _, err := NewScheduler(&countingReporter{}, "*/5 * * * *"); err == nil {
		t.Error("expected error for spec without seconds field")
	}
}

func TestNewSchedulerEmptySpec(t *testing.T) {
	s, err := NewScheduler(&countingReporter{}, "")
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if s.Entries() != 0 {
		t.Errorf("entries = %d, want 0", s.Entries())
	}
}

func TestSchedulerRunsReportJob(t *testing.T) {
	r := &countingReporter{}
	s, err := NewScheduler(r, "* * * * * *")
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if s.Entries() != 1 {
		t.Fatalf("entries = %d, want 1", s.Entries())
	}

	s.Start()
	deadline := time.Now().Add(3 * time.Second)
	for r.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	s.Stop()

	if r.runs.Load() == 0 {
		t.Error("report job never ran")
	}
}

func TestReportJobSurvivesError(t *testing.T) {
	r := &countingReporter{err: errors.New("db down")}
	NewReportJob(r).Run()
	if r.runs.Load() != 1 {
		t.Errorf("runs = %d, want 1", r.runs.Load())
	}
}
