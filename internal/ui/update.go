package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fraudguard/fraudguard/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.maxWidth > 0 && m.width > m.maxWidth {
			m.width = m.maxWidth
		}
		if m.maxHeight > 0 && m.height > m.maxHeight {
			m.height = m.maxHeight
		}
		m.historyTable.SetWidth(m.width - 4)
		if h := m.height - 10; h > 3 {
			m.historyTable.SetHeight(h)
		}
		m.ready = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case healthMsg:
		m.connected = msg.err == nil

	case historyMsg:
		// A failed refresh never clears what is already shown; the next
		// successful fetch replaces the cache wholesale, so with
		// overlapping refreshes the latest arrival simply wins.
		// The outcome doubles as the connectivity indicator, so the
		// status dot stays current without any background polling.
		m.connected = msg.err == nil
		if msg.err == nil {
			m.entries = msg.entries
			m.historyTable.SetRows(historyRows(m.entries))
		}

	case analyzeMsg:
		if msg.seq != m.analyzeSeq {
			// Response to a submission that has been superseded.
			break
		}
		m.analyzing = false
		if msg.err != nil {
			m.notice = "Analysis failed: the scoring service is unreachable.\nNothing was changed. Dismiss and try again."
			break
		}
		verdict := msg.verdict
		m.verdict = &verdict
		m.lastRecord = msg.record
		// Pick up the newly recorded entry.
		cmds = append(cmds, fetchHistory(m.client))

	case chatMsg:
		m.chatWaiting = false
		turn := chatTurn{text: msg.reply}
		if msg.err != nil {
			turn.text = "The assistant is unreachable right now. Please try again."
		}
		m.transcript = append(m.transcript, turn)

	case reportMsg:
		if msg.err != nil {
			m.downloadStatus = "Report download failed: " + msg.err.Error()
		} else {
			m.downloadStatus = "Report saved to " + msg.path
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}

	// A blocking notice eats every key until dismissed.
	if m.notice != "" {
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Submit) {
			m.notice = ""
		}
		return m, nil
	}

	if m.chatOpen {
		return m.handleChatKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Chat):
		m.chatOpen = true
		m.chatInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Tab):
		m.activeTab = (m.activeTab + 1) % 3
		return m, nil
	}

	// Digit shortcuts and q are disabled while a free-text form field is
	// focused; they type into the field instead.
	if !(m.activeTab == tabAnalyze && m.form.textFocused()) {
		switch {
		case key.Matches(msg, keys.Dashboard):
			m.activeTab = tabDashboard
			return m, nil
		case key.Matches(msg, keys.Analyze):
			m.activeTab = tabAnalyze
			return m, nil
		case key.Matches(msg, keys.History):
			m.activeTab = tabHistory
			return m, nil
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
	}

	switch m.activeTab {
	case tabAnalyze:
		return m.handleAnalyzeKey(msg)
	case tabHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleAnalyzeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		m.form.next()
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.form.prev()
		return m, nil

	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
		if !m.form.textFocused() {
			delta := 1
			if key.Matches(msg, keys.Left) {
				delta = -1
			}
			m.form.cycle(delta)
			return m, nil
		}

	case key.Matches(msg, keys.Randomize):
		m.form.setRecord(domain.RandomRecord(m.rng))
		return m, nil

	case key.Matches(msg, keys.Submit):
		if m.analyzing {
			// One in-flight submission at a time.
			return m, nil
		}
		rec, err := domain.Normalize(m.form.payload())
		if err != nil {
			m.notice = "Invalid transaction: " + err.Error()
			return m, nil
		}
		m.analyzing = true
		m.analyzeSeq++
		return m, submitAnalyze(m.client, rec, m.analyzeSeq)
	}

	return m, m.form.update(msg)
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Refresh):
		return m, fetchHistory(m.client)

	case key.Matches(msg, keys.Report):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		path := fmt.Sprintf("fraud_report_%s.pdf", entry.ID)
		m.downloadStatus = "Downloading report for " + entry.ID + "..."
		return m, downloadReport(m.client, entry.ID, path)
	}

	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.chatOpen = false
		m.chatInput.Blur()
		return m, nil

	case key.Matches(msg, keys.Submit):
		query := strings.TrimSpace(m.chatInput.Value())
		if query == "" || m.chatWaiting {
			return m, nil
		}
		// The transcript only ever grows; closing the overlay keeps it.
		m.transcript = append(m.transcript, chatTurn{fromUser: true, text: query})
		m.chatInput.SetValue("")
		m.chatWaiting = true
		return m, askAssistant(m.client, query)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// textFocused reports whether the focused form field accepts free text.
func (f form) textFocused() bool {
	return f.focused != fieldCategory && f.focused != fieldGender
}

// selectedEntry maps the table cursor (newest first) back to the
// chronological cache.
func (m Model) selectedEntry() (domain.HistoryEntry, bool) {
	if len(m.entries) == 0 {
		return domain.HistoryEntry{}, false
	}
	idx := len(m.entries) - 1 - m.historyTable.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return domain.HistoryEntry{}, false
	}
	return m.entries[idx], true
}
