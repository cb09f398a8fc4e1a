package model

import "time"

const (
	DefaultMistakes = "None"
	DefaultRewards  = "None"
)

// AddLogRequest add log request, accepted from query, form or JSON body
type AddLogRequest struct {
	TaskName string `form:"task_name" json:"task_name" binding:"required"`
	Status   string `form:"status" json:"status" binding:"required"`
	Mistakes string `form:"mistakes" json:"mistakes"`
	Rewards  string `form:"rewards" json:"rewards"`
}

// LogEntry study log entry
type LogEntry struct {
	TaskName string    `json:"task_name"`
	Status   string    `json:"status"`   // free text, stored as a select option
	Mistakes string    `json:"mistakes"` // "None" when not provided
	Rewards  string    `json:"rewards"`  // "None" when not provided
	Date     time.Time `json:"date"`     // UTC, set at creation
}

// ToLogEntry converts the request to an entry dated now, filling defaults
func (r *AddLogRequest) ToLogEntry(now time.Time) *LogEntry {
	entry := &LogEntry{
		TaskName: r.TaskName,
		Status:   r.Status,
		Mistakes: r.Mistakes,
		Rewards:  r.Rewards,
		Date:     now.UTC(),
	}
	if entry.Mistakes == "" {
		entry.Mistakes = DefaultMistakes
	}
	if entry.Rewards == "" {
		entry.Rewards = DefaultRewards
	}
	return entry
}

// MessageResponse generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// MistakeAnalysisResponse analyze mistakes response
type MistakeAnalysisResponse struct {
	MistakeAnalysis map[string]int `json:"Mistake Analysis"`
}

// ErrorResponse error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}
