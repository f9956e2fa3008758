package intel

import (
	"context"
	"fmt"
	"time"

	"github.com/bryanwahyu/darkwatch/internal/application"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	domain "github.com/bryanwahyu/darkwatch/internal/domain/intel"

	"github.com/bryanwahyu/darkwatch/internal/domain/history"
)

// Service implements use-cases untuk threat intelligence.
type Service struct {
	Client      classifier.Client
	Prioritizer *domain.Prioritizer
	Reporter    *domain.ReportGenerator
	Clock       Clock
}

type Clock interface {
	Now() time.Time
}

// Prioritize classifies text and runs it through the SOC alert engine.
func (s *Service) Prioritize(ctx context.Context, text, modelType string) (*domain.Alert, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", application.ErrInvalidInput)
	}
	res, err := s.Client.Classify(ctx, text, modelType)
	if err != nil {
		return nil, err
	}
	return s.Prioritizer.Prioritize(text, res.Category, res.Confidence, res.Keywords, s.Clock.Now()), nil
}

// Report classifies text and generates a case-file intelligence report.
func (s *Service) Report(ctx context.Context, text, source, modelType string) (*domain.Report, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", application.ErrInvalidInput)
	}
	res, err := s.Client.Classify(ctx, text, modelType)
	if err != nil {
		return nil, err
	}
	in := domain.ReportInput{
		Text:       text,
		Category:   res.Category,
		Confidence: res.Confidence,
		RiskLevel:  string(history.SeverityOf(res.Category, res.Confidence)),
		Keywords:   res.Keywords,
		Source:     source,
	}
	return s.Reporter.Generate(in, s.Clock.Now()), nil
}

// TextReport renders the printable case-file format for a freshly generated report.
func (s *Service) TextReport(ctx context.Context, text, source, modelType string) (*domain.Report, string, error) {
	report, err := s.Report(ctx, text, source, modelType)
	if err != nil {
		return nil, "", err
	}
	return report, s.Reporter.TextReport(report), nil
}

// AlertStats returns prioritizer statistics for the dashboard.
func (s *Service) AlertStats() *domain.AlertStats {
	return s.Prioritizer.DashboardStats(s.Clock.Now())
}
