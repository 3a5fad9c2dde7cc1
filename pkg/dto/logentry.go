package dto

import "encoding/json"

// AppendLogRequest is a client-written log entry (camera toggles, UI errors).
type AppendLogRequest struct {
	Level     string          `json:"level" binding:"required,oneof=ERROR WARN INFO DEBUG"`
	Tag       string          `json:"tag,omitempty"`
	Message   string          `json:"message" binding:"required"`
	Context   json.RawMessage `json:"context,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
}

type LogEntryResponse struct {
	ID        int64           `json:"id"`
	CreatedAt string          `json:"created_at"`
	Level     string          `json:"level"`
	Tag       string          `json:"tag,omitempty"`
	Message   string          `json:"message"`
	Context   json.RawMessage `json:"context,omitempty"`
	CreatedBy string          `json:"created_by"`
}

type LogListResponse struct {
	Logs  []LogEntryResponse `json:"logs"`
	Total int                `json:"total"`
}
