package dto

type SuggestTagsRequest struct {
	Content string `json:"content" validate:"required"`
}

type SuggestTagsResponse struct {
	SuggestedTags []string `json:"suggested_tags"`
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Classifier string `json:"classifier"`
}
