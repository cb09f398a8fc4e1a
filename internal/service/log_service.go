package service

import (
	"context"
	"fmt"
	"time"

	"studymanager/internal/model"
	"studymanager/pkg/analysis"
	"studymanager/pkg/logger"
	"studymanager/pkg/metrics"
	"studymanager/pkg/notion"
)

// EntryStore is the external database holding study log entries
type EntryStore interface {
	CreateEntry(ctx context.Context, entry notion.Entry) error
	QueryEntries(ctx context.Context) ([]notion.Page, error)
}

// LogService provides study log operations
type LogService struct {
	store EntryStore
	now   func() time.Time
}

// NewLogService creates a new log service
func NewLogService(store EntryStore) *LogService {
	return &LogService{
		store: store,
		now:   time.Now,
	}
}

// AddLog stamps the request with the current UTC time and writes it to the store
func (s *LogService) AddLog(ctx context.Context, req *model.AddLogRequest) (*model.LogEntry, error) {
	entry := req.ToLogEntry(s.now())

	err := s.store.CreateEntry(ctx, notion.Entry{
		TaskName: entry.TaskName,
		Status:   entry.Status,
		Mistakes: entry.Mistakes,
		Rewards:  entry.Rewards,
		Date:     entry.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add log: %w", err)
	}

	metrics.RecordLogEntryCreated()
	logger.InfoCtx(ctx, "study log added, task: %s, status: %s", entry.TaskName, entry.Status)
	return entry, nil
}

// AnalyzeMistakes counts repeated mistakes over the first page of stored entries
func (s *LogService) AnalyzeMistakes(ctx context.Context) (analysis.Tally, error) {
	pages, err := s.store.QueryEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	tally := analysis.Aggregate(pages)
	logger.DebugCtx(ctx, "analyzed %d entries, %d distinct mistakes", len(pages), len(tally))
	return tally, nil
}
