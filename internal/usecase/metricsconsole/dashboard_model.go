package metricsconsole

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"devpulse/internal/usecase/dashboard"
)

const maxShownAchievements = 6

type Options struct {
	ContributorID   uint64
	RangeDays       int
	RefreshInterval time.Duration
}

type dashboardModel struct {
	ctx             context.Context
	service         *dashboard.Service
	contributorID   uint64
	rangeDays       int
	refreshInterval time.Duration

	data    dashboard.ContributorDashboard
	hasData bool
	status  string
}

type dashboardLoadedMsg struct {
	data dashboard.ContributorDashboard
	err  error
}

type tickMsg struct{}

func NewDashboardModel(ctx context.Context, service *dashboard.Service, options Options) tea.Model {
	rangeDays := options.RangeDays
	if rangeDays <= 0 {
		rangeDays = 30
	}
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &dashboardModel{
		ctx:             ctx,
		service:         service,
		contributorID:   options.ContributorID,
		rangeDays:       rangeDays,
		refreshInterval: interval,
		status:          "loading",
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m *dashboardModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	case dashboardLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.data = msg.data
		m.hasData = true
		m.status = "refreshed " + time.Now().Format("15:04:05")
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.status = "refreshing"
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("DevPulse Dashboard"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"contributor=%d range=%dd refresh=%s",
		m.contributorID,
		m.rangeDays,
		m.refreshInterval,
	)))
	builder.WriteString("\n\n")

	if !m.hasData {
		builder.WriteString(dimStyle.Render("- loading dashboard"))
		builder.WriteString("\n\n")
		builder.WriteString(dimStyle.Render("Keys: g refresh  q quit"))
		return builder.String()
	}

	builder.WriteString(sectionStyle.Render(m.data.Name))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Commits"))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("- total=%d +%d/-%d %s\n",
		m.data.Commits.Total,
		m.data.Commits.Additions,
		m.data.Commits.Deletions,
		renderTrend(m.data.Commits.Trend),
	))
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Pull Requests"))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("- created=%d merged=%d rate=%s iterations=%s %s\n",
		m.data.PullRequests.Created,
		m.data.PullRequests.Merged,
		renderRate(m.data.PullRequests.MergeRate),
		renderFloat(m.data.PullRequests.AvgIterations),
		renderTrend(m.data.PullRequests.Trend),
	))
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Reviews"))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("- total=%d approved=%d changes_requested=%d %s\n",
		m.data.Reviews.Total,
		m.data.Reviews.Approved,
		m.data.Reviews.ChangesRequested,
		renderTrend(m.data.Reviews.Trend),
	))
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Streak"))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("- current=%d longest=%d\n\n",
		m.data.Streak.CurrentStreak,
		m.data.Streak.LongestStreak,
	))

	builder.WriteString(sectionStyle.Render("Achievements"))
	builder.WriteString("\n")
	if len(m.data.Achievements) == 0 {
		builder.WriteString(dimStyle.Render("- none yet"))
		builder.WriteString("\n")
	} else {
		shown := m.data.Achievements
		if len(shown) > maxShownAchievements {
			shown = shown[:maxShownAchievements]
		}
		for _, achievement := range shown {
			builder.WriteString(fmt.Sprintf("- %s: %s\n", achievement.Name, achievement.Description))
		}
	}
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Top Repositories"))
	builder.WriteString("\n")
	if len(m.data.Distributions.Repositories) == 0 {
		builder.WriteString(dimStyle.Render("- no commits in range"))
		builder.WriteString("\n")
	} else {
		for _, entry := range m.data.Distributions.Repositories {
			builder.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Name, entry.Count))
		}
	}
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + m.status)
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render("Keys: g refresh  q quit"))
	return builder.String()
}

func (m *dashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *dashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -m.rangeDays)
		data, err := m.service.ContributorDashboard(m.ctx, dashboard.ContributorDashboardInput{
			ContributorID: m.contributorID,
			From:          from,
			To:            to,
		})
		return dashboardLoadedMsg{data: data, err: err}
	}
}

func renderTrend(trend dashboard.Trend) string {
	switch trend.Type {
	case dashboard.TrendPositive:
		return fmt.Sprintf("↑%.1f%%", trend.Value)
	case dashboard.TrendNegative:
		return fmt.Sprintf("↓%.1f%%", -trend.Value)
	default:
		return "→0%"
	}
}

func renderRate(rate *float64) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *rate)
}

func renderFloat(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}
