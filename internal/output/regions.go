package output

import (
	"fmt"
	"strings"

	"github.com/estax/estax/internal/calculation"
	"github.com/estax/estax/internal/domain"
)

// FormatRegionsReport renders the static bracket tables: the state scale,
// then every regional scale with the combined (state + regional) marginal
// rate per band. Requires no taxpayer profile.
func FormatRegionsReport(engine *calculation.TaxEngine) string {
	var sb strings.Builder

	sb.WriteString("IRPF RATES BY REGION\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	sb.WriteString("STATE (all regions)\n")
	fmt.Fprintf(&sb, "  %-25s %10s\n", "Bracket", "Rate")
	for _, b := range engine.State {
		fmt.Fprintf(&sb, "  %-25s %10s\n", bracketRange(b), FormatPercent(b.Rate))
	}
	sb.WriteString("\n")

	for _, region := range domain.Regions() {
		table, ok := engine.Regional[region]
		if !ok {
			continue
		}
		sb.WriteString(strings.ToUpper(region.DisplayName()) + "\n")
		aligned := sameBounds(engine.State, table)
		if aligned {
			fmt.Fprintf(&sb, "  %-25s %10s %10s\n", "Bracket", "Regional", "Combined")
		} else {
			fmt.Fprintf(&sb, "  %-25s %10s\n", "Bracket", "Regional")
		}
		for i, b := range table {
			if aligned {
				combined := engine.State[i].Rate.Add(b.Rate)
				fmt.Fprintf(&sb, "  %-25s %10s %10s\n", bracketRange(b), FormatPercent(b.Rate), FormatPercent(combined))
			} else {
				fmt.Fprintf(&sb, "  %-25s %10s\n", bracketRange(b), FormatPercent(b.Rate))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func bracketRange(b calculation.TaxBracket) string {
	return FormatBracketRange(domain.BracketTax{Min: b.Min, Max: b.Max, Open: b.Open})
}

// sameBounds reports whether two tables share bracket boundaries, which is
// when a combined marginal rate per band is meaningful.
func sameBounds(a, b calculation.BracketTable) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Min.Equal(b[i].Min) || a[i].Open != b[i].Open {
			return false
		}
		if !a[i].Open && !a[i].Max.Equal(b[i].Max) {
			return false
		}
	}
	return true
}
