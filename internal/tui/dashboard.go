// Package tui renders the interactive dashboard. All data is fetched by
// the caller before the program starts; the model only presents it.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"moneypal/internal/budget"
	"moneypal/internal/cli"
	"moneypal/internal/model"
	"moneypal/internal/service"
)

type tab int

const (
	tabDashboard tab = iota
	tabTransactions
	tabTrend
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Transactions", "Trend"}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(cli.SubtleColor).
				Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			MarginTop(1)
)

// Model is the bubbletea model for the dashboard TUI.
type Model struct {
	summary      budget.Summary
	monthly      []service.MonthlyTotal
	transactions table.Model
	gauge        progress.Model
	activeTab    tab
	width        int
	height       int
}

// NewModel builds the TUI model from pre-fetched data.
func NewModel(summary budget.Summary, expenses []model.Expense, monthly []service.MonthlyTotal) Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Item", Width: 28},
		{Title: "Category", Width: 10},
		{Title: "Amount", Width: 10},
		{Title: "Tags", Width: 24},
	}

	rows := make([]table.Row, 0, len(expenses))
	for _, exp := range expenses {
		tags := ""
		for i, t := range exp.Tags {
			if i > 0 {
				tags += ", "
			}
			tags += t.String()
		}
		rows = append(rows, table.Row{
			exp.OccurredAt.Format("2006-01-02"),
			exp.Note,
			exp.Category.Label(),
			model.FormatCents(exp.AmountCents),
			tags,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cli.PrimaryColor)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#000")).Background(cli.PrimaryColor)
	t.SetStyles(styles)

	gauge := progress.New(progress.WithDefaultGradient())
	gauge.ShowPercentage = true

	return Model{
		summary:      summary,
		monthly:      monthly,
		transactions: t,
		gauge:        gauge,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gauge.Width = min(m.width-20, 48)
	}

	if m.activeTab == tabTransactions {
		var cmd tea.Cmd
		m.transactions, cmd = m.transactions.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var panel string
	switch m.activeTab {
	case tabDashboard:
		panel = m.renderDashboard()
	case tabTransactions:
		panel = m.transactions.View()
	case tabTrend:
		panel = m.renderTrend()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		panelStyle.Render(panel),
		helpStyle.Render("tab/←→ switch · ↑↓ scroll · q quit"),
	)
}

func (m Model) renderTabs() string {
	rendered := make([]string, 0, int(tabCount))
	for i, name := range tabNames {
		if tab(i) == m.activeTab {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}

func (m Model) renderDashboard() string {
	s := m.summary

	lines := []string{
		fmt.Sprintf("Spending budget  %s", model.FormatCents(s.SpendingBudgetCents)),
		fmt.Sprintf("Spent this month %s", model.FormatCents(s.SpentCents)),
		fmt.Sprintf("Remaining        %s", model.FormatCents(s.RemainingCents)),
		"",
	}

	if s.SpendingBudgetCents > 0 {
		used := float64(s.SpentCents) / float64(s.SpendingBudgetCents)
		if used > 1 {
			used = 1
		}
		lines = append(lines, m.gauge.ViewAs(used), "")
	}

	for _, cat := range s.Categories {
		lines = append(lines, fmt.Sprintf("%-10s %10s spent of %10s",
			cat.Category.Label(),
			model.FormatCents(cat.SpentCents),
			model.FormatCents(cat.BudgetCents)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTrend() string {
	if len(m.monthly) == 0 {
		return cli.SubtleStyle.Render("No expenses recorded yet.")
	}

	var maxCents int64
	for _, mt := range m.monthly {
		if mt.TotalCents > maxCents {
			maxCents = mt.TotalCents
		}
	}

	const barWidth = 36
	lines := make([]string, 0, len(m.monthly))
	for _, mt := range m.monthly {
		filled := 0
		if maxCents > 0 {
			filled = int(mt.TotalCents * barWidth / maxCents)
		}
		bar := ""
		for i := 0; i < filled; i++ {
			bar += "█"
		}
		lines = append(lines, fmt.Sprintf("%-9s %-38s %10s",
			cli.FormatYearMonth(mt.Month),
			cli.InfoStyle.Render(bar),
			model.FormatCents(mt.TotalCents)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run starts the TUI program in the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
