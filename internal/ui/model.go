// Package ui implements the terminal dashboard: an Elm-style state
// machine over the scoring service client. All service I/O runs in
// commands; Update is the only place state changes, so every invariant
// about the history cache and the analyze flow lives here.
package ui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fraudguard/fraudguard/internal/api"
	"github.com/fraudguard/fraudguard/internal/domain"
)

type tab int

const (
	tabDashboard tab = iota
	tabAnalyze
	tabHistory
)

// chatTurn is one line of the assistant transcript.
type chatTurn struct {
	fromUser bool
	text     string
}

type Model struct {
	client *api.Client
	apiURL string
	rng    *rand.Rand

	// Server link
	connected bool

	// History cache: the single client-side copy of the scored
	// transaction log, chronological ascending. Replaced wholesale on
	// every successful fetch, never merged, so the latest arrival wins.
	entries []domain.HistoryEntry

	// Analyze state
	form       form
	verdict    *domain.RiskVerdict
	lastRecord domain.TransactionRecord
	analyzing  bool
	analyzeSeq int
	notice     string // non-empty = blocking modal, must be dismissed

	// History view
	historyTable   table.Model
	downloadStatus string

	// Chat overlay
	chatOpen    bool
	chatWaiting bool
	chatInput   textinput.Model
	transcript  []chatTurn

	// UI state
	activeTab tab
	width     int
	height    int
	maxWidth  int
	maxHeight int
	ready     bool
}

// Messages

type healthMsg struct {
	health api.Health
	err    error
}

type historyMsg struct {
	entries []domain.HistoryEntry
	err     error
}

type analyzeMsg struct {
	seq     int
	record  domain.TransactionRecord
	verdict domain.RiskVerdict
	err     error
}

type chatMsg struct {
	reply string
	err   error
}

type reportMsg struct {
	path string
	err  error
}


func NewModel(client *api.Client, apiURL string, maxWidth, maxHeight int) Model {
	m := Model{
		client:    client,
		apiURL:    apiURL,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
	m.form = newForm(domain.DefaultRecord())
	m.historyTable = newHistoryTable()

	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "Ask about fraud patterns..."
	m.chatInput.CharLimit = 200

	return m
}

func (m Model) Init() tea.Cmd {
	// No background polling: the startup probe and refresh are the only
	// fetches not tied to a discrete user action.
	return tea.Batch(
		fetchHealth(m.client),
		fetchHistory(m.client),
	)
}

// Entries exposes the history cache for aggregation.
func (m Model) Entries() []domain.HistoryEntry {
	return m.entries
}

// Commands

func fetchHealth(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		h, err := c.Health()
		return healthMsg{h, err}
	}
}

func fetchHistory(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		entries, err := c.History()
		return historyMsg{entries, err}
	}
}

func submitAnalyze(c *api.Client, rec domain.TransactionRecord, seq int) tea.Cmd {
	return func() tea.Msg {
		verdict, err := c.Analyze(rec)
		return analyzeMsg{seq: seq, record: rec, verdict: verdict, err: err}
	}
}

func askAssistant(c *api.Client, query string) tea.Cmd {
	return func() tea.Msg {
		reply, err := c.Ask(query)
		return chatMsg{reply, err}
	}
}

func downloadReport(c *api.Client, id, path string) tea.Cmd {
	return func() tea.Msg {
		err := c.DownloadReport(id, path)
		return reportMsg{path, err}
	}
}

