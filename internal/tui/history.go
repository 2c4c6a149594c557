package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/sheet"
)

type historyView struct {
	deps    Deps
	life    lifetime
	spin    spinner.Model
	loading bool
	err     error
	records []api.HistoryRecord
	table   table.Model
	saved   string
	failed  string
}

func newHistoryView(f frame, d Deps, l lifetime) *historyView {
	v := &historyView{
		deps:    d,
		life:    l,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading: true,
		table:   table.New(table.WithFocused(true), table.WithHeight(12)),
	}
	v.layout(f)
	return v
}

// Init fetches the full list once; there is no paging or refresh.
func (v *historyView) Init() tea.Cmd {
	backend := v.deps.Backend
	return tea.Batch(v.spin.Tick, v.life.run(func(ctx context.Context) tea.Msg {
		records, err := backend.History(ctx)
		return historyMsg{records: records, err: err}
	}))
}

// layout rebuilds columns and rows for the current language and currency.
func (v *historyView) layout(f frame) {
	v.table.SetColumns([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 19},
		{Title: f.tr.Manufacturer, Width: 14},
		{Title: f.tr.Model, Width: 12},
		{Title: f.tr.Year, Width: 6},
		{Title: f.tr.Transmission, Width: 10},
		{Title: f.tr.Mileage, Width: 9},
		{Title: f.tr.FuelType, Width: 9},
		{Title: f.Currency, Width: 16},
	})
	rows := make([]table.Row, 0, len(v.records))
	for _, r := range v.records {
		rows = append(rows, table.Row{
			strconv.Itoa(r.ID),
			r.Timestamp,
			r.Manufacturer,
			r.Model,
			strconv.Itoa(r.Year),
			r.Transmission,
			strconv.FormatFloat(r.Mileage, 'f', -1, 64),
			r.FuelType,
			f.money.Format(r.PredictedPrice),
		})
	}
	v.table.SetRows(rows)

	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(f.st.p.subtext).Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(f.st.p.surface1)
	s.Selected = s.Selected.Foreground(f.st.p.focus).Background(f.st.p.surface0).Bold(true)
	v.table.SetStyles(s)
}

func (v *historyView) export(f frame) {
	if len(v.records) == 0 {
		return
	}
	book, err := sheet.HistoryExport(v.records, f.Currency)
	var path string
	if err == nil {
		path, err = sheet.Save(book, v.deps.ExportDir, sheet.HistoryFileName(v.deps.Now()))
	}
	if err != nil {
		v.deps.Log.Error().Err(err).Msg("history export")
		v.saved, v.failed = "", err.Error()
		return
	}
	v.saved, v.failed = f.tr.ExportSaved+": "+path, ""
}

func (v *historyView) Update(f frame, msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case historyMsg:
		v.loading = false
		v.records, v.err = m.records, m.err
		if m.err != nil {
			v.deps.Log.Error().Err(m.err).Msg("history fetch")
		}
		v.layout(f)
		return nil
	case contextChangedMsg:
		v.layout(f)
		return nil
	case tea.WindowSizeMsg:
		v.table.SetHeight(max(m.Height-16, 5))
		return nil
	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(m)
		return cmd
	case tea.KeyMsg:
		if key.Matches(m, keyExport) {
			v.export(f)
			return nil
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(m)
		return cmd
	}
	return nil
}

func (v *historyView) View(f frame) string {
	var body string
	switch {
	case v.loading:
		body = v.spin.View() + " " + f.tr.Processing
	case v.err != nil:
		body = f.st.errText.Render(f.tr.Error) + "\n" + f.tr.ConnError
	case len(v.records) == 0:
		body = f.st.muted.Render(f.tr.HistoryEmpty)
	default:
		body = v.table.View() + "\n" + f.st.label.Render(fmt.Sprintf("%s: %d", f.tr.HistoryTotal, len(v.records)))
	}
	if v.saved != "" {
		body += "\n" + f.st.okText.Render(v.saved)
	}
	if v.failed != "" {
		body += "\n" + f.st.errText.Render(v.failed)
	}
	return renderSection(f, f.tr.HistoryTitle, body)
}

func (v *historyView) Help() []key.Binding {
	return []key.Binding{keyUp, keyExport}
}

type historyMsg struct {
	records []api.HistoryRecord
	err     error
}
