package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estax/estax/internal/calculation"
	"github.com/estax/estax/internal/config"
	"github.com/estax/estax/internal/tui"
)

func main() {
	var engine *calculation.TaxEngine
	var err error

	// Optional rates file argument, same semantics as estax --rates.
	if len(os.Args) > 1 {
		rates, loadErr := config.NewRatesParser().LoadFromFile(os.Args[1])
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading rates file: %v\n", loadErr)
			os.Exit(1)
		}
		engine, err = calculation.NewTaxEngineWithRates(*rates)
	} else {
		engine, err = calculation.NewTaxEngine()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tax engine: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
