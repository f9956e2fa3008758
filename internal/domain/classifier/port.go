package classifier

import "context"

// Result adalah bentuk respons dari prediction service
type Result struct {
	Category       string             `json:"category"`
	Confidence     float64            `json:"confidence"`
	Keywords       []string           `json:"keywords,omitempty"`
	Probabilities  map[string]float64 `json:"all_probabilities,omitempty"`
	ModelType      string             `json:"model_type,omitempty"`
	ProcessingTime float64            `json:"processing_time,omitempty"`
}

// Client port (interface untuk prediction service)
type Client interface {
	Classify(ctx context.Context, text, modelType string) (*Result, error)
	ClassifyBatch(ctx context.Context, texts []string, modelType string) ([]*Result, error)
}
