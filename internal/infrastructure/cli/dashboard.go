package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planwright/pkg/storage"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI view of the current execution plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("PLANWRIGHT_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		p := tea.NewProgram(initialModel(root))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var orphanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
var groupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

type dashboardModel struct {
	table    table.Model
	planID   string
	version  int
	groups   []string
	orphans  []string
	duration float64
	err      error
}

func initialModel(root string) dashboardModel {
	repo := storage.NewFilesystemRepository(root)

	ep, err := repo.LoadExecutionPlan()
	if err != nil {
		return dashboardModel{err: err}
	}

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Task", Width: 28},
		{Title: "Priority", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "Resource", Width: 14},
		{Title: "Group", Width: 8},
	}

	groupOf := make(map[string]int)
	for i, group := range ep.ParallelGroups {
		for _, id := range group {
			groupOf[id] = i + 1
		}
	}

	rows := []table.Row{}
	for i, id := range ep.ExecutionOrder {
		req := ep.ResourceAllocation[id]
		group := "-"
		if n, ok := groupOf[id]; ok {
			group = fmt.Sprintf("G%d", n)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			id,
			string(req.Priority),
			fmt.Sprintf("%.0fm", req.EstimatedDuration),
			string(req.ResourceType),
			group,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	var groups []string
	for i, group := range ep.ParallelGroups {
		groups = append(groups, fmt.Sprintf("G%d: %s", i+1, strings.Join(group, ", ")))
	}

	return dashboardModel{
		table:    t,
		planID:   ep.ID,
		version:  ep.PlanVersion,
		groups:   groups,
		orphans:  ep.OrphanedTasks,
		duration: ep.EstimatedDuration,
	}
}

func (m dashboardModel) Init() tea.Cmd { return nil }

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("Execution plan %s (v%d)", m.planID, m.version))

	groupView := ""
	if len(m.groups) > 0 {
		groupView = groupStyle.Render("\nParallel groups:\n" + strings.Join(m.groups, "\n"))
	}

	orphanView := ""
	if len(m.orphans) > 0 {
		orphanView = orphanStyle.Render("\nORPHANED: " + strings.Join(m.orphans, ", "))
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			fmt.Sprintf("Estimated duration: %.0f min", m.duration),
			"\nExecution order:",
			m.table.View(),
			groupView,
			orphanView,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
