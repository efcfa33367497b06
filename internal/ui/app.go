// Package ui renders the filter bank as a live bubbletea application:
// the raw signal and every smoothing selector side by side, with
// sparkline history, pause, reset and disturbance injection.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/googlesky/shiftema/internal/collector"
)

// SnapshotMsg delivers a new snapshot to the UI.
type SnapshotMsg collector.Snapshot

// Controller is implemented by the collector; the UI uses it for
// interval changes, filter resets and disturbance injection.
type Controller interface {
	SetInterval(d time.Duration)
	Inject(delta int64)
	Bias(delta int64)
	ResetFilters()
}

// Preset refresh interval steps (sorted fastest→slowest)
var intervalPresets = []time.Duration{
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
	1 * time.Second,
	2 * time.Second,
	5 * time.Second,
}

// Model is the root bubbletea model for emascope.
type Model struct {
	width  int
	height int

	snapshot collector.Snapshot
	haveSnap bool

	// Selected filter row (index into snapshot.Filters)
	cursor int

	showHelp bool
	inject   injectOverlay

	paused         bool
	pausedSnapshot collector.Snapshot

	intervalIdx int        // index into intervalPresets
	ctrl        Controller // callback surface into the collector

	// Snapshot channel (for tea.Cmd polling)
	snapCh <-chan collector.Snapshot
}

// New creates a new UI model.
func New(snapCh <-chan collector.Snapshot) Model {
	return Model{
		snapCh:      snapCh,
		inject:      newInjectOverlay(),
		intervalIdx: 3, // default 1s (index into intervalPresets)
	}
}

// SetController sets the collector reference for runtime control.
func (m *Model) SetController(c Controller) {
	m.ctrl = c
}

// WaitForSnapshot returns a tea.Cmd that waits for the next snapshot.
// Returns tea.Quit if the channel is closed (collector stopped).
func WaitForSnapshot(ch <-chan collector.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return SnapshotMsg(snap)
	}
}

func (m Model) Init() tea.Cmd {
	return WaitForSnapshot(m.snapCh)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SnapshotMsg:
		if !m.paused {
			m.snapshot = collector.Snapshot(msg)
			m.haveSnap = true
			if m.cursor >= len(m.snapshot.Filters) {
				m.cursor = 0
			}
		}
		return m, WaitForSnapshot(m.snapCh)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inject overlay — intercept all keys when active
	if m.inject.active {
		if m.inject.typing {
			switch msg.String() {
			case "enter":
				if m.ctrl != nil && m.inject.applyCustom(m.ctrl) {
					m.inject.close()
				}
				return m, nil
			case "esc":
				m.inject.close()
				return m, nil
			default:
				var cmd tea.Cmd
				m.inject.input, cmd = m.inject.input.Update(msg)
				return m, cmd
			}
		}
		switch matchKey(msg) {
		case keyUp:
			m.inject.moveUp()
		case keyDown:
			m.inject.moveDown()
		case keyEnter:
			if m.ctrl != nil && m.inject.selected(m.ctrl) {
				m.inject.close()
			} else if m.inject.typing {
				return m, m.inject.input.Cursor.BlinkCmd()
			}
		case keyEsc, keyInject, keyQuit:
			m.inject.close()
		}
		return m, nil
	}

	// Help overlay — ? toggles, any key closes
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch matchKey(msg) {
	case keyQuit:
		return m, tea.Quit
	case keyHelp:
		m.showHelp = true
	case keyPause:
		m.paused = !m.paused
		if m.paused {
			m.pausedSnapshot = m.snapshot
		}
	case keyReset:
		if m.ctrl != nil {
			m.ctrl.ResetFilters()
		}
	case keyInject:
		m.inject.open()
	case keyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown:
		if m.cursor < len(m.snapshot.Filters)-1 {
			m.cursor++
		}
	case keyIntervalUp:
		m.changeInterval(-1) // faster = lower index
	case keyIntervalDown:
		m.changeInterval(1) // slower = higher index
	}

	return m, nil
}

func (m *Model) changeInterval(delta int) {
	newIdx := m.intervalIdx + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(intervalPresets) {
		newIdx = len(intervalPresets) - 1
	}
	if newIdx == m.intervalIdx {
		return
	}
	m.intervalIdx = newIdx
	if m.ctrl != nil {
		m.ctrl.SetInterval(intervalPresets[m.intervalIdx])
	}
}
