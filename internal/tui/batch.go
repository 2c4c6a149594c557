package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/batch"
	"github.com/autoprestige/autoprestige/internal/sheet"
	"github.com/autoprestige/autoprestige/internal/valuation"
)

const batchVisibleRows = 12

type batchView struct {
	deps  Deps
	life  lifetime
	wf    batch.Workflow
	path  textinput.Model
	spin  spinner.Model
	saved string
}

func newBatchView(d Deps, l lifetime) *batchView {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "cars.xlsx"
	ti.Width = 60
	ti.Focus()
	return &batchView{
		deps: d,
		life: l,
		path: ti,
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (v *batchView) Init() tea.Cmd { return textinput.Blink }

func (v *batchView) upload(f frame) tea.Cmd {
	raw := strings.TrimSpace(v.path.Value())
	if raw == "" || v.wf.Loading() {
		return nil
	}
	v.saved = ""
	if err := v.wf.Select(raw, batch.DetectMIME(raw)); err != nil {
		v.deps.Log.Warn().Str("file", raw).Err(err).Msg("batch file rejected")
		v.wf.Reject(f.tr.BadFileType)
		return nil
	}
	if _, err := os.Stat(raw); err != nil {
		v.wf.Reject(f.tr.FileMissing + ": " + raw)
		return nil
	}
	path, err := v.wf.Begin()
	if err != nil {
		return nil
	}
	backend, delay := v.deps.Backend, v.deps.UXDelay
	return tea.Batch(v.spin.Tick, v.life.run(func(ctx context.Context) tea.Msg {
		if err := valuation.Sleep(ctx, delay); err != nil {
			return batchDoneMsg{err: err}
		}
		file, err := os.Open(path)
		if err != nil {
			return batchDoneMsg{err: err}
		}
		defer file.Close()
		rows, err := backend.PredictBatch(ctx, filepath.Base(path), file)
		return batchDoneMsg{rows: rows, err: err}
	}))
}

func (v *batchView) export(f frame) {
	rows := v.wf.Rows()
	if len(rows) == 0 {
		return
	}
	book, err := sheet.BatchExport(rows, f.Currency)
	if err == nil {
		v.saved, err = sheet.Save(book, v.deps.ExportDir, sheet.BatchFileName(v.deps.Now()))
	}
	if err != nil {
		v.deps.Log.Error().Err(err).Msg("batch export")
		v.saved = ""
		v.wf.Reject(err.Error())
		return
	}
	v.saved = f.tr.ExportSaved + ": " + v.saved
}

func (v *batchView) template(f frame) {
	book, err := sheet.Template()
	if err == nil {
		v.saved, err = sheet.Save(book, v.deps.ExportDir, sheet.TemplateFile)
	}
	if err != nil {
		v.deps.Log.Error().Err(err).Msg("template export")
		v.saved = ""
		v.wf.Reject(err.Error())
		return
	}
	v.saved = f.tr.TemplateSaved + ": " + v.saved
}

func (v *batchView) Update(f frame, msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case batchDoneMsg:
		if m.err != nil {
			v.deps.Log.Error().Err(m.err).Msg("batch upload failed")
			v.wf.Fail(batch.FailureMessage(m.err, f.tr.BatchConnError))
			return nil
		}
		v.wf.Resolve(m.rows)
		v.deps.Log.Info().Int("rows", len(m.rows)).Msg("batch priced")
		return nil
	case spinner.TickMsg:
		if !v.wf.Loading() {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(m)
		return cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keyUpload):
			return v.upload(f)
		case key.Matches(m, keyExport):
			v.export(f)
			return nil
		case key.Matches(m, keyTemplate):
			v.template(f)
			return nil
		}
		if v.wf.Loading() {
			return nil
		}
		var cmd tea.Cmd
		v.path, cmd = v.path.Update(m)
		return cmd
	}
	return nil
}

func (v *batchView) View(f frame) string {
	parts := []string{
		f.st.muted.Render(f.tr.BatchDesc),
		"",
		f.st.label.Render(f.tr.UploadBtn),
		v.path.View(),
	}
	switch {
	case v.wf.Loading():
		parts = append(parts, "", v.spin.View()+" "+f.tr.Processing)
	case v.wf.ErrMessage() != "":
		parts = append(parts, "", f.st.errText.Render(v.wf.ErrMessage()))
	}
	if v.saved != "" {
		parts = append(parts, "", f.st.okText.Render(v.saved))
	}
	if s := v.wf.Summary(); s != nil {
		avg := "-"
		if a, ok := s.Average(); ok {
			avg = f.money.Format(a)
		}
		parts = append(parts, "", renderCards(f,
			[2]string{f.tr.TotalCars, fmt.Sprint(s.Count)},
			[2]string{f.tr.TotalValue, f.money.Format(s.TotalUSD)},
			[2]string{f.tr.AverageValue, avg},
		))
		parts = append(parts, v.table(f))
	}
	return renderSection(f, f.tr.BatchTitle, lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func cell(r api.BatchRow, col string) string {
	val, ok := r.Get(col)
	if !ok || val == nil {
		return ""
	}
	return fmt.Sprint(val)
}

func (v *batchView) table(f frame) string {
	rows := v.wf.Rows()
	var b strings.Builder
	head := fmt.Sprintf("%-4s %-16s %-16s %-6s %-10s %s", "#", f.tr.Manufacturer, f.tr.Model, f.tr.Year, f.tr.Mileage, f.Currency)
	b.WriteString(f.st.label.Render(head))
	for i, r := range rows {
		if i == batchVisibleRows {
			b.WriteString("\n" + f.st.muted.Render(fmt.Sprintf("… +%d", len(rows)-batchVisibleRows)))
			break
		}
		b.WriteString(fmt.Sprintf("\n%-4d %-16s %-16s %-6s %-10s %s", i+1,
			truncate(cell(r, "manufacturer"), 16), truncate(cell(r, "model"), 16),
			cell(r, "year"), cell(r, "mileage"), f.st.price.Render(f.money.Format(r.PredictedPrice))))
	}
	return b.String()
}

func (v *batchView) Help() []key.Binding {
	return []key.Binding{keyUpload, keyTemplate, keyExport}
}

type batchDoneMsg struct {
	rows []api.BatchRow
	err  error
}
