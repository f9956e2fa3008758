package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/darkwatch/internal/application"
	appclassify "github.com/bryanwahyu/darkwatch/internal/application/classify"
	apphistory "github.com/bryanwahyu/darkwatch/internal/application/history"
	appintel "github.com/bryanwahyu/darkwatch/internal/application/intel"
	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	domain "github.com/bryanwahyu/darkwatch/internal/domain/history"
	"github.com/bryanwahyu/darkwatch/internal/middleware"
)

type Router struct {
	classifySvc *appclassify.Service
	historySvc  *apphistory.Service
	intelSvc    *appintel.Service
}

func NewRouter(classifySvc *appclassify.Service, historySvc *apphistory.Service, intelSvc *appintel.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{classifySvc: classifySvc, historySvc: historySvc, intelSvc: intelSvc}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/analyze/batch", r.wrap(r.handleAnalyzeBatch))
		rt.Post("/analyze/prioritize", r.wrap(r.handlePrioritize))
		rt.Post("/analyze/report", r.wrap(r.handleReport))
		rt.Post("/analyze/report/text", r.wrap(r.handleReportText))
		rt.Get("/categories", r.wrap(r.handleCategories))
		rt.Get("/alerts/stats", r.wrap(r.handleAlertStats))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/history/stats", r.wrap(r.handleStats))
		rt.Get("/history/{id}", r.wrap(r.handleGetRecord))
		rt.Delete("/history/{id}", r.wrap(r.handleDeleteRecord))
		rt.Delete("/history", r.wrap(r.handleClearHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, application.ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, classifier.ErrQuotaExceeded):
				http.Error(w, "classifier quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, classifier.ErrUnavailable):
				http.Error(w, "classifier unavailable", http.StatusBadGateway)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

type analyzeRequest struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	ModelType string `json:"model_type"`
}

// POST /v1/analyze
// Body: {"text": "...", "source": "Manual Input", "model_type": "bert"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}
	if err := middleware.ValidateModelType(body.ModelType); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}

	middleware.IncrementAnalyses()
	rec, err := r.classifySvc.Analyze(req.Context(), body.Text, middleware.SanitizeString(body.Source), body.ModelType)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rec)
}

// POST /v1/analyze/batch
// Body: {"texts": ["..."], "model_type": "bert"}
func (r *Router) handleAnalyzeBatch(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Texts     []string `json:"texts"`
		ModelType string   `json:"model_type"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}
	if err := middleware.ValidateModelType(body.ModelType); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}

	middleware.IncrementAnalyses()
	results, err := r.classifySvc.AnalyzeBatch(req.Context(), body.Texts, body.ModelType)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"results": results,
		"total":   len(results),
	})
}

// POST /v1/analyze/prioritize
func (r *Router) handlePrioritize(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}
	if err := middleware.ValidateModelType(body.ModelType); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}

	alert, err := r.intelSvc.Prioritize(req.Context(), body.Text, body.ModelType)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(alert)
}

// POST /v1/analyze/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}

	report, err := r.intelSvc.Report(req.Context(), body.Text, middleware.SanitizeString(body.Source), body.ModelType)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(report)
}

// POST /v1/analyze/report/text
// Same input as /analyze/report but returns the printable case file.
func (r *Router) handleReportText(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}

	_, text, err := r.intelSvc.TextReport(req.Context(), body.Text, middleware.SanitizeString(body.Source), body.ModelType)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = w.Write([]byte(text))
	return err
}

// GET /v1/categories
func (r *Router) handleCategories(w http.ResponseWriter, req *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"categories": classifier.Categories,
		"base_risk":  classifier.BaseRisk,
	})
}

// GET /v1/alerts/stats
func (r *Router) handleAlertStats(w http.ResponseWriter, req *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(r.intelSvc.AlertStats())
}

// GET /v1/history?search=&category=&severity=&page=1&pageSize=10
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()

	query := domain.Query{
		Text:     middleware.SanitizeString(q.Get("search")),
		Category: q.Get("category"),
		Severity: q.Get("severity"),
	}
	if err := middleware.ValidateCategory(query.Category); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}
	if err := middleware.ValidateSeverity(query.Severity); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidInput, err)
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	page = middleware.ValidatePage(page)
	pageSize = middleware.ValidateLimit(pageSize)

	result, err := r.historySvc.Query(req.Context(), query, page, pageSize)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /v1/history/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	stats, err := r.historySvc.CalculateStats(req.Context())
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(stats)
}

// GET /v1/history/{id}
func (r *Router) handleGetRecord(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	rec, err := r.historySvc.GetRecordByID(req.Context(), domain.RecordID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rec)
}

// DELETE /v1/history/{id}
func (r *Router) handleDeleteRecord(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	found, err := r.historySvc.DeleteFromHistory(req.Context(), domain.RecordID(id))
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{"deleted": id})
}

// DELETE /v1/history
func (r *Router) handleClearHistory(w http.ResponseWriter, req *http.Request) error {
	if err := r.historySvc.ClearHistory(req.Context()); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{"cleared": true})
}
