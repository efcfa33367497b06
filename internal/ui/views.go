package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()
	headerHeight := strings.Count(header, "\n") + 1

	footer := m.renderFooter()
	footerHeight := 1

	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if !m.haveSnap {
		content = styleHeaderLabel.Render("  waiting for first sample...")
	} else {
		content = m.renderTable()
	}

	// Pad content to fill available height so footer stays at bottom
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}

	result := lipgloss.JoinVertical(lipgloss.Left,
		header,
		content,
		footer,
	)

	// Overlays on top of everything
	if m.inject.active {
		result = m.inject.render(m.width, m.height)
	} else if m.showHelp {
		result = renderHelp(m.width, m.height)
	}

	return result
}

func (m Model) renderHeader() string {
	title := styleHeaderTitle.Render("emascope") +
		styleHeaderLabel.Render(" · fixed-point EMA filter bank")

	var signal string
	if m.haveSnap {
		signal = styleHeaderLabel.Render("signal ") +
			styleHeaderValue.Render(m.snapshot.SourceName) +
			styleHeaderLabel.Render("   raw ") +
			styleRawRow.Render(fmt.Sprintf("%d", m.snapshot.Raw))
		if m.snapshot.SourceErr != "" {
			signal += "   " + styleSourceErr.Render("source: "+m.snapshot.SourceErr)
		}
	} else {
		signal = styleHeaderLabel.Render("signal ") + styleHeaderValue.Render("—")
	}

	rawSpark := styleSparkRaw.Render(sparkline(m.snapshot.RawHistory, m.sparkWidth()))

	return title + "\n" + signal + "\n" + rawSpark + "\n"
}

// sparkWidth is the history column width for the current terminal size.
func (m Model) sparkWidth() int {
	w := m.width - 46 // fixed columns + margins
	if w < 8 {
		w = 8
	}
	if w > 64 {
		w = 64
	}
	return w
}

func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(styleTableHeader.Render(fmt.Sprintf("  %-7s %8s %10s %12s %s",
		"WEIGHT", "DIVISOR", "VALUE", "SCALED", "HISTORY")))
	b.WriteString("\n")

	for i, fp := range m.snapshot.Filters {
		spark := styleSpark.Render(sparkline(fp.History, m.sparkWidth()))
		row := fmt.Sprintf("%-7s %8d %10d %12d %s",
			fp.Smoothing.String(),
			fp.Smoothing.Divisor(),
			fp.Value,
			fp.Scaled,
			spark,
		)
		if i == m.cursor {
			b.WriteString(styleSelected.Render("> ") + row)
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	// Detail line for the selected filter
	if m.cursor < len(m.snapshot.Filters) {
		fp := m.snapshot.Filters[m.cursor]
		delta := fp.Value - m.snapshot.Raw
		b.WriteString("\n")
		b.WriteString(styleHeaderLabel.Render("  selected ") +
			styleHeaderValue.Render(fp.Smoothing.String()) +
			styleHeaderLabel.Render("  lag vs raw ") +
			styleHeaderValue.Render(fmt.Sprintf("%+d", delta)))
	}

	return b.String()
}

func (m Model) renderFooter() string {
	var parts []string

	parts = append(parts,
		styleFooterKey.Render("?")+styleFooter.Render(" help"),
		styleFooterKey.Render("i")+styleFooter.Render(" inject"),
		styleFooterKey.Render("r")+styleFooter.Render(" reset"),
		styleFooterKey.Render("p")+styleFooter.Render(" pause"),
		styleFooterKey.Render("q")+styleFooter.Render(" quit"),
	)

	if m.paused {
		parts = append(parts, stylePaused.Render("PAUSED"))
	}

	interval := intervalPresets[m.intervalIdx]
	parts = append(parts,
		styleFooterKey.Render("+/-")+styleFooter.Render(" ")+
			styleHeaderValue.Render(formatInterval(interval)),
	)

	return "  " + strings.Join(parts, "  ")
}

func renderHelp(width, height int) string {
	rows := []struct{ key, desc string }{
		{"↑/↓, k/j", "select filter row"},
		{"i", "inject a spike or step into the signal"},
		{"r", "reset all filters (next sample reseeds)"},
		{"p, space", "pause display (collection continues)"},
		{"+/-", "faster / slower sampling interval"},
		{"?", "toggle this help"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(styleOverlayTitle.Render("emascope keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-12s %s\n",
			styleFooterKey.Render(r.key), styleFooter.Render(r.desc)))
	}

	box := styleOverlayBox.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func formatInterval(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	s := float64(ms) / 1000.0
	if s == float64(int(s)) {
		return fmt.Sprintf("%ds", int(s))
	}
	return fmt.Sprintf("%.1fs", s)
}
