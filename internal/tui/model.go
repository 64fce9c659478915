package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/estax/estax/internal/calculation"
	"github.com/estax/estax/internal/domain"
	"github.com/estax/estax/internal/output"
)

// regionChoices is the cycling order for the region selector.
var regionChoices = append([]domain.Region{domain.RegionNone}, domain.Regions()...)

// Model is the interactive calculator state. The engine is pure, so the
// result is recomputed on every input change.
type Model struct {
	engine *calculation.TaxEngine

	income    textinput.Model
	regionIdx int
	beckham   bool
	monthly   bool

	result *domain.TaxResult
	err    error

	width  int
	height int
}

// NewModel creates the application model over a constructed engine.
func NewModel(engine *calculation.TaxEngine) Model {
	ti := textinput.New()
	ti.Placeholder = "60000"
	ti.Prompt = "€ "
	ti.CharLimit = 12
	ti.Width = 16
	ti.Focus()

	return Model{
		engine: engine,
		income: ti,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			m.regionIdx = (m.regionIdx + len(regionChoices) - 1) % len(regionChoices)
			m.recalculate()
			return m, nil
		case "right":
			m.regionIdx = (m.regionIdx + 1) % len(regionChoices)
			m.recalculate()
			return m, nil
		case "tab":
			m.beckham = !m.beckham
			m.recalculate()
			return m, nil
		case "shift+tab":
			m.monthly = !m.monthly
			m.recalculate()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.income, cmd = m.income.Update(msg)
	m.recalculate()
	return m, cmd
}

// recalculate re-runs the engine against the current inputs. An empty or
// unparseable income clears the result instead of reporting an error.
func (m *Model) recalculate() {
	raw := strings.TrimSpace(m.income.Value())
	if raw == "" {
		m.result = nil
		m.err = nil
		return
	}
	income, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.result = nil
		m.err = fmt.Errorf("income must be a number")
		return
	}

	profile := domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromFloat(income),
		Monthly:     m.monthly,
		Region:      regionChoices[m.regionIdx],
		BeckhamLaw:  m.beckham,
	}
	m.result, m.err = m.engine.Calculate(profile, domain.Dependents{})
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("estax — Spanish IRPF Calculator"))
	sb.WriteString("\n\n")

	sb.WriteString(PanelStyle.Render(m.inputView()))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(ErrorStyle.Render("  " + m.err.Error()))
		sb.WriteString("\n")
	} else if m.result != nil {
		sb.WriteString(PanelStyle.Render(m.resultView()))
		sb.WriteString("\n")
	}

	sb.WriteString(HelpStyle.Render("←/→ region · tab beckham · shift+tab monthly · esc quit"))
	sb.WriteString("\n")

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m Model) inputView() string {
	var sb strings.Builder
	sb.WriteString(LabelStyle.Render("Gross income") + m.income.View() + "\n")
	sb.WriteString(LabelStyle.Render("Region") + ValueStyle.Render(regionChoices[m.regionIdx].DisplayName()) + "\n")
	sb.WriteString(LabelStyle.Render("Beckham Law") + toggle(m.beckham) + "\n")
	sb.WriteString(LabelStyle.Render("Monthly income") + toggle(m.monthly))
	return sb.String()
}

func (m Model) resultView() string {
	r := m.result
	monthly := r.Monthly()

	var sb strings.Builder
	row := func(label string, value string, style lipgloss.Style) {
		sb.WriteString(LabelStyle.Render(label) + style.Render(value) + "\n")
	}

	row("Gross income", output.FormatCurrency(r.GrossIncome), ValueStyle)
	row("Social Security", output.FormatCurrency(r.SocialSecurity), TaxStyle)
	if r.BeckhamLaw {
		row("Beckham tax", output.FormatCurrency(r.BeckhamTax), TaxStyle)
	} else {
		row("State IRPF", output.FormatCurrency(r.StateTax), TaxStyle)
		if r.RegionalTax.IsPositive() {
			row("Regional IRPF", output.FormatCurrency(r.RegionalTax), TaxStyle)
		}
	}
	row("Total deductions", output.FormatCurrency(r.TotalDeductions), TaxStyle)
	row("Net income", output.FormatCurrency(r.NetIncome), NetStyle)
	row("Net monthly", output.FormatCurrency(monthly.Net), NetStyle)
	row("Effective rate", output.FormatPercent(r.EffectiveRate), ValueStyle)
	return strings.TrimRight(sb.String(), "\n")
}

func toggle(on bool) string {
	if on {
		return ToggleOnStyle.Render("on")
	}
	return ToggleOffStyle.Render("off")
}
