// Command emascope feeds a live integer signal through a bank of
// fixed-point EMA filters and shows raw vs. smoothed values in the
// terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/googlesky/shiftema/internal/collector"
	"github.com/googlesky/shiftema/internal/source"
	"github.com/googlesky/shiftema/internal/ui"
)

func main() {
	interval := flag.Duration("interval", 1*time.Second, "sampling interval")
	synthetic := flag.Bool("synthetic", false, "use the synthetic demo signal instead of interface byte counters")
	iface := flag.String("iface", "", "interface to sample (default: auto-detect, empty = all)")
	flag.Parse()

	// Redirect log output to a file so it doesn't interfere with TUI
	logFile, err := os.CreateTemp("", "emascope-*.log")
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	src := source.New(*iface, *synthetic)

	c := collector.New(src, *interval)
	snapCh := c.Start()
	defer c.Stop()

	model := ui.New(snapCh)
	model.SetController(c)

	prog := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
