package dto

import "firefly-assistant/internal/models"

type ParseRequest struct {
	Text string `json:"text"`
}

type RecordResponse struct {
	Message string              `json:"message"`
	Result  *models.BatchResult `json:"result"`
}

type TagsAndCategoriesResponse struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

type HistoryResponse struct {
	ID           string `json:"id"`
	BatchID      string `json:"batch_id"`
	DryRun       bool   `json:"dry_run"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
	CreatedAt    string `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
