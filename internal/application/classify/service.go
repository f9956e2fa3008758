package classify

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	domain "github.com/bryanwahyu/darkwatch/internal/domain/history"

	"github.com/bryanwahyu/darkwatch/internal/application"
	apphistory "github.com/bryanwahyu/darkwatch/internal/application/history"
)

// MaxBatchTexts caps a single batch classification request.
const MaxBatchTexts = 100

// MaxTextLength matches the prediction service's input limit.
const MaxTextLength = 10000

// Service implements use-cases untuk analisis konten.
type Service struct {
	Client  classifier.Client
	History *apphistory.Service
}

// Analyze classifies text and records the result in the history store.
// On classifier failure no store mutation happens, so the store is never
// left in a partial state.
func (s *Service) Analyze(ctx context.Context, text, source, modelType string) (*domain.Record, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", application.ErrInvalidInput)
	}
	if len([]rune(text)) > MaxTextLength {
		return nil, fmt.Errorf("%w: text exceeds maximum length of %d characters", application.ErrInvalidInput, MaxTextLength)
	}
	if source == "" {
		source = "Manual Input"
	}

	res, err := s.Client.Classify(ctx, text, modelType)
	if err != nil {
		return nil, err
	}

	return s.History.SaveToHistory(ctx, res, source, text)
}

// AnalyzeBatch classifies up to MaxBatchTexts texts without touching the
// history store.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string, modelType string) ([]*classifier.Result, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: texts is required", application.ErrInvalidInput)
	}
	if len(texts) > MaxBatchTexts {
		return nil, fmt.Errorf("%w: at most %d texts per batch", application.ErrInvalidInput, MaxBatchTexts)
	}
	return s.Client.ClassifyBatch(ctx, texts, modelType)
}
