package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudguard/fraudguard/internal/assistant"
	"github.com/fraudguard/fraudguard/internal/database"
	"github.com/fraudguard/fraudguard/internal/domain"
	"github.com/fraudguard/fraudguard/internal/history"
	"github.com/fraudguard/fraudguard/internal/scoring"
)

var memCounter int

func testServer(t *testing.T) *Server {
	t.Helper()

	memCounter++
	dsn := fmt.Sprintf("file:servertest%d?mode=memory&cache=shared", memCounter)
	db, err := database.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := zerolog.Nop()
	repo := history.NewRepository(db.Conn(), log)
	svc := scoring.NewService(repo, nil, log)
	responder := assistant.NewResponder(repo, log)

	return New(Config{
		Log:       log,
		Port:      0,
		DataDir:   t.TempDir(),
		Scoring:   svc,
		History:   repo,
		Assistant: responder,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "fraudguard", body["service"])
}

func TestHandlePredictReturnsVerdictAndRecords(t *testing.T) {
	srv := testServer(t)

	payload := map[string]interface{}{
		"merchant":  "fraud_big_spender",
		"category":  "shopping_net",
		"amt":       "480.00", // string amounts are coerced
		"lat":       40.0,
		"long":      -80.0,
		"merch_lat": 30.0,
		"merch_lon": -100.0,
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/predict", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var verdict domain.RiskVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.Equal(t, domain.Fraud, verdict.RiskLevel)
	assert.True(t, verdict.IsFraud)
	assert.Equal(t, domain.ActionBlocked, verdict.ActionTaken)

	// The verdict must have been persisted.
	histRec := doJSON(t, srv, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, histRec.Code)

	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "fraud_big_spender", entries[0].Merchant)
	assert.NotEmpty(t, entries[0].ID)
}

func TestHandlePredictRejectsBadPayloads(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name    string
		payload map[string]interface{}
		status  int
	}{
		{"unparseable amount", map[string]interface{}{"amt": "not-a-number"}, http.StatusUnprocessableEntity},
		{"non-numeric latitude", map[string]interface{}{"lat": []int{1}}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/predict", tt.payload)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandlePredictInvalidJSON(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryEmptyIsArray(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleVisualizeAliasesHistory(t *testing.T) {
	srv := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/predict", map[string]interface{}{"amt": 10.0})

	histRec := doJSON(t, srv, http.MethodGet, "/api/history", nil)
	vizRec := doJSON(t, srv, http.MethodGet, "/api/visualize", nil)
	assert.Equal(t, histRec.Body.String(), vizRec.Body.String())
}

func TestHandleChat(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/chat", map[string]string{"query": "how it works"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["response"], "weighted risk")
}

func TestHandleReport(t *testing.T) {
	srv := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/predict", map[string]interface{}{"amt": 25.0})

	histRec := doJSON(t, srv, http.MethodGet, "/api/history", nil)
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)

	rec := doJSON(t, srv, http.MethodGet, "/api/report/"+entries[0].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestHandleReportNotFound(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/report/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSystemStatus(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/system/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "transactions_analyzed")
}
