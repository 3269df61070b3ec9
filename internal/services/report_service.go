package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"opportunity-finder/internal/models"
)

// StatsSource is the part of the store the report needs.
type StatsSource interface {
	Ping(ctx context.Context) error
	GetStats(ctx context.Context) (*models.Stats, error)
}

// ReportService logs a periodic snapshot of the opportunities table.
type ReportService struct {
	store StatsSource

	mu   sync.Mutex
	last *models.Stats
}

// NewReportService creates a ReportService.
func NewReportService(store StatsSource) (*ReportService, error) {
	if store == nil {
		return nil, fmt.Errorf("stats source must not be nil")
	}
	log.Println("INFO: [ReportService] initialized.")
	return &ReportService{store: store}, nil
}

// Run pings the database and logs the current stats, including how many
// rows were analyzed since the previous run.
func (s *ReportService) Run(ctx context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	st, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}

	if s.last != nil {
		log.Printf("INFO: [ReportService] total: %d, analyzed: %d (+%d since last report), avg score: %.2f, top score: %.2f",
			st.Total, st.Analyzed, st.Analyzed-s.last.Analyzed, st.AvgScore, st.TopScore)
	} else {
		log.Printf("INFO: [ReportService] total: %d, analyzed: %d, avg score: %.2f, top score: %.2f",
			st.Total, st.Analyzed, st.AvgScore, st.TopScore)
	}
	if st.Total > 0 && st.Analyzed == 0 {
		log.Println("WARN: [ReportService] table has rows but none are analyzed yet.")
	}
	s.last = st
	return st, nil
}
