package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudguard/fraudguard/internal/domain"
)

func TestClient_Analyze(t *testing.T) {
	var got domain.TransactionRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/predict", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(domain.RiskVerdict{
			Prediction:  1,
			RiskScore:   0.92,
			IsFraud:     false,
			RiskLevel:   domain.HighRisk,
			Details:     "High Risk detected (92.0%)",
			ActionTaken: domain.ActionFlagged,
		})
	}))
	defer srv.Close()

	rec := domain.DefaultRecord()
	verdict, err := NewClient(srv.URL).Analyze(rec)
	require.NoError(t, err)

	assert.Equal(t, rec.Merchant, got.Merchant)
	assert.Equal(t, rec.Amt, got.Amt)
	assert.Equal(t, domain.HighRisk, verdict.RiskLevel)
	assert.Equal(t, 0.92, verdict.RiskScore)
}

func TestClient_Analyze_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Analyze(domain.DefaultRecord())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestClient_Analyze_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := NewClient(srv.URL).Analyze(domain.DefaultRecord())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestClient_History(t *testing.T) {
	lat := 40.71
	long := -74.01
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/history", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.HistoryEntry{
			{ID: "one", RiskLevel: domain.RiskFree, Lat: &lat, Long: &long},
			{ID: "two", RiskLevel: domain.Fraud, IsFraud: true},
		})
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).History()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].ID)
	assert.Nil(t, entries[1].Lat)
}

func TestClient_History_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).History()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"version": "1.0.0",
			"service": "fraudguard",
		})
	}))
	defer srv.Close()

	h, err := NewClient(srv.URL).Health()
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "fraudguard", h.Service)
}

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "show stats", req["query"])
		json.NewEncoder(w).Encode(map[string]string{"response": "2 analyzed"})
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Ask("show stats")
	require.NoError(t, err)
	assert.Equal(t, "2 analyzed", reply)
}
