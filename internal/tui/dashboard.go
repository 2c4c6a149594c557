package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoprestige/autoprestige/internal/api"
)

const chartHeight = 8

type dashboardView struct {
	deps    Deps
	life    lifetime
	spin    spinner.Model
	loading bool
	err     error
	stats   api.DashboardStats
}

func newDashboardView(d Deps, l lifetime) *dashboardView {
	return &dashboardView{
		deps:    d,
		life:    l,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading: true,
	}
}

// Init fetches the aggregate document once per mount; there is no polling.
func (v *dashboardView) Init() tea.Cmd {
	backend := v.deps.Backend
	return tea.Batch(v.spin.Tick, v.life.run(func(ctx context.Context) tea.Msg {
		s, err := backend.DashboardStats(ctx)
		return dashboardMsg{stats: s, err: err}
	}))
}

func (v *dashboardView) Update(f frame, msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case dashboardMsg:
		v.loading = false
		v.stats, v.err = m.stats, m.err
		if m.err != nil {
			v.deps.Log.Error().Err(m.err).Msg("dashboard stats")
		}
	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(m)
		return cmd
	}
	return nil
}

func (v *dashboardView) View(f frame) string {
	switch {
	case v.loading:
		return renderSection(f, f.tr.DashTitle, v.spin.View()+" "+f.tr.DashLoading)
	case v.err != nil:
		return renderSection(f, f.tr.DashTitle, f.st.errText.Render(f.tr.DashError))
	case v.stats.Empty():
		return renderSection(f, f.tr.DashTitle, f.st.title.Render(f.tr.DashEmpty)+"\n"+f.st.muted.Render(f.tr.DashEmptyHint))
	}

	cards := make([]string, 0, len(v.stats.Stats))
	for _, s := range v.stats.Stats {
		change := f.st.errText.Render(s.Change)
		if s.IsPos {
			change = f.st.okText.Render(s.Change)
		}
		cards = append(cards, f.st.card.Render(
			f.st.label.Render(s.Label)+"\n"+f.st.price.Render(s.Value)+"\n"+change))
	}

	half := f.contentWidth()/2 - 2
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		f.st.section.Width(half).Render(f.st.title.Render(f.tr.DashTrend)+"\n"+trendChart(f, v.stats.ChartData, half-2)),
		f.st.section.Width(half).Render(f.st.title.Render(f.tr.DashBrands)+"\n"+brandChart(f, v.stats.BrandData, half-2)),
	)

	return renderSection(f, f.tr.DashTitle, lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		charts,
		f.st.title.Render(f.tr.DashRecent),
		recentList(f, v.stats.Recent),
	))
}

func trendChart(f frame, points []api.ChartPoint, width int) string {
	if len(points) < 2 {
		return f.st.muted.Render(f.tr.NoChartData)
	}
	values := make([]float64, len(points))
	lo, hi := points[0].Price, points[0].Price
	for i, p := range points {
		values[i] = p.Price
		lo, hi = min(lo, p.Price), max(hi, p.Price)
	}
	sl := sparkline.New(width, chartHeight)
	sl.PushAll(values)
	sl.DrawBraille()
	axis := fmt.Sprintf("%s … %s", points[0].Name, points[len(points)-1].Name)
	scale := fmt.Sprintf("%s – %s", f.money.Format(lo), f.money.Format(hi))
	return sl.View() + "\n" + f.st.muted.Render(axis+"  "+scale)
}

func brandChart(f frame, brands []api.BrandShare, width int) string {
	if len(brands) == 0 {
		return f.st.muted.Render(f.tr.NoChartData)
	}
	data := make([]barchart.BarData, 0, len(brands))
	legend := make([]string, 0, len(brands))
	for _, b := range brands {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
		data = append(data, barchart.BarData{
			Label:  truncate(b.Name, 6),
			Values: []barchart.BarValue{{Name: b.Name, Value: float64(b.Value), Style: style}},
		})
		legend = append(legend, style.Render("■")+" "+fmt.Sprintf("%s %d", b.Name, b.Value))
	}
	bc := barchart.New(width, chartHeight)
	bc.PushAll(data)
	bc.Draw()
	return bc.View() + "\n" + strings.Join(legend, "  ")
}

func recentList(f frame, recent []api.HistoryRecord) string {
	if len(recent) == 0 {
		return f.st.muted.Render(f.tr.NoChartData)
	}
	lines := make([]string, 0, len(recent))
	for _, r := range recent {
		name := fmt.Sprintf("%s %s %d", r.Manufacturer, r.Model, r.Year)
		lines = append(lines, padRight(truncate(name, 32), 34)+f.st.price.Render(f.money.Format(r.PredictedPrice)))
	}
	return strings.Join(lines, "\n")
}

func (v *dashboardView) Help() []key.Binding { return nil }

type dashboardMsg struct {
	stats api.DashboardStats
	err   error
}
