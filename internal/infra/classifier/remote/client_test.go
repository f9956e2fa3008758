package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body struct {
			Text      string `json:"text"`
			ModelType string `json:"model_type"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "selling cc dumps", body.Text)
		require.Equal(t, "bert", body.ModelType)

		json.NewEncoder(w).Encode(classifier.Result{
			Category:   "Financial Fraud",
			Confidence: 0.91,
			Keywords:   []string{"cc", "dumps"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second)
	res, err := client.Classify(context.Background(), "selling cc dumps", "bert")

	require.NoError(t, err)
	require.Equal(t, "Financial Fraud", res.Category)
	require.Equal(t, 0.91, res.Confidence)
	require.Equal(t, []string{"cc", "dumps"}, res.Keywords)
}

func TestClassifyBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict/batch", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"results": []classifier.Result{
				{Category: "Normal", Confidence: 0.9},
				{Category: "Drug Sales", Confidence: 0.8},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	results, err := client.ClassifyBatch(context.Background(), []string{"a", "b"}, "")

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Drug Sales", results[1].Category)
}

func TestClassifyQuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Classify(context.Background(), "text", "")

	require.ErrorIs(t, err, classifier.ErrQuotaExceeded)
}

func TestClassifyServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Classify(context.Background(), "text", "")

	require.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestClassifyClientErrorIsPlain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Classify(context.Background(), "text", "")

	require.Error(t, err)
	require.NotErrorIs(t, err, classifier.ErrUnavailable)
	require.NotErrorIs(t, err, classifier.ErrQuotaExceeded)
}

func TestClassifyConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 100*time.Millisecond)
	_, err := client.Classify(context.Background(), "text", "")

	require.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	require.NoError(t, client.Health(context.Background()))
}

func TestHealthUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	require.ErrorIs(t, client.Health(context.Background()), classifier.ErrUnavailable)
}
