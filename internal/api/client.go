// Package api is the dashboard's client for the fraud scoring service.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// ErrUnreachable marks any transport or HTTP failure talking to the
// service. Callers decide how loudly to surface it: a failed analyze is
// a blocking notice, a failed history refresh degrades silently.
var ErrUnreachable = errors.New("scoring service unreachable")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Health is the service liveness response.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Internal helpers

func (c *Client) get(path string, target any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API returned %d", ErrUnreachable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func (c *Client) post(path string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API returned %d", ErrUnreachable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// Endpoints

func (c *Client) Health() (Health, error) {
	var h Health
	return h, c.get("/health", &h)
}

// Analyze submits one transaction for scoring. One request per
// user-initiated submit; the client never retries on its own, since a
// duplicate submit can mean a duplicate card-block action.
func (c *Client) Analyze(rec domain.TransactionRecord) (domain.RiskVerdict, error) {
	var v domain.RiskVerdict
	return v, c.post("/api/predict", rec, &v)
}

// History fetches the full scored-transaction history, chronological
// ascending. Zero entries is a valid response, not an error.
func (c *Client) History() ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	return entries, c.get("/api/history", &entries)
}

// Ask sends one free-text query to the assistant. Stateless per call; no
// transaction context goes along.
func (c *Client) Ask(query string) (string, error) {
	var resp struct {
		Response string `json:"response"`
	}
	err := c.post("/api/chat", map[string]string{"query": query}, &resp)
	return resp.Response, err
}

// DownloadReport fetches the PDF report for a history entry and writes it
// to path. Pure pass-through: the body is not interpreted.
func (c *Client) DownloadReport(id, path string) error {
	resp, err := c.httpClient.Get(c.baseURL + "/api/report/" + id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API returned %d", ErrUnreachable, resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
