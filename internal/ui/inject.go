package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// disturbEntry is one injectable disturbance. A spike is applied to
// the next sample only; a step shifts every following sample.
type disturbEntry struct {
	name   string
	desc   string
	spike  int64
	step   int64
	custom bool // read the amount from the text input
}

var disturbList = []disturbEntry{
	{name: "Spike +500", desc: "next sample only", spike: 500},
	{name: "Spike -500", desc: "next sample only", spike: -500},
	{name: "Step +500", desc: "every following sample", step: 500},
	{name: "Step -500", desc: "every following sample", step: -500},
	{name: "Custom spike", desc: "type an amount", custom: true},
}

// injectOverlay manages the disturbance selection state.
type injectOverlay struct {
	active bool
	cursor int
	typing bool
	input  textinput.Model
}

func newInjectOverlay() injectOverlay {
	ti := textinput.New()
	ti.Prompt = "amount: "
	ti.CharLimit = 12
	return injectOverlay{input: ti}
}

func (o *injectOverlay) open() {
	o.active = true
	o.cursor = 0
	o.typing = false
	o.input.SetValue("")
}

func (o *injectOverlay) close() {
	o.active = false
	o.typing = false
	o.input.Blur()
}

func (o *injectOverlay) moveUp() {
	if o.cursor > 0 {
		o.cursor--
	}
}

func (o *injectOverlay) moveDown() {
	if o.cursor < len(disturbList)-1 {
		o.cursor++
	}
}

// selected applies the highlighted entry. It returns false when the
// entry needs a typed amount first.
func (o *injectOverlay) selected(ctrl Controller) bool {
	e := disturbList[o.cursor]
	if e.custom {
		o.typing = true
		o.input.Focus()
		return false
	}
	if e.spike != 0 {
		ctrl.Inject(e.spike)
	}
	if e.step != 0 {
		ctrl.Bias(e.step)
	}
	return true
}

// applyCustom parses the typed amount and injects it as a spike.
func (o *injectOverlay) applyCustom(ctrl Controller) bool {
	v, err := strconv.ParseInt(strings.TrimSpace(o.input.Value()), 10, 64)
	if err != nil {
		return false
	}
	ctrl.Inject(v)
	return true
}

func (o *injectOverlay) render(width, height int) string {
	var b strings.Builder
	b.WriteString(styleOverlayTitle.Render("Inject disturbance"))
	b.WriteString("\n\n")

	for i, e := range disturbList {
		line := fmt.Sprintf("%-14s %s", e.name, styleHeaderLabel.Render(e.desc))
		if i == o.cursor {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if o.typing {
		b.WriteString("\n")
		b.WriteString(o.input.View())
	}
	b.WriteString("\n")
	b.WriteString(styleFooter.Render("enter apply · esc cancel"))

	box := styleOverlayBox.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
