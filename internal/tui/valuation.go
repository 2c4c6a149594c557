package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoprestige/autoprestige/internal/refdata"
	"github.com/autoprestige/autoprestige/internal/valuation"
)

type valuationView struct {
	deps   Deps
	life   lifetime
	wf     *valuation.Workflow
	submit valuation.Submitter
	inputs []textinput.Model
	focus  int
	spin   spinner.Model
	years  []string
	note   string
}

func newValuationView(d Deps, l lifetime) *valuationView {
	v := &valuationView{
		deps:   d,
		life:   l,
		wf:     valuation.New(),
		submit: valuation.Submitter{Backend: d.Backend, Delay: d.UXDelay},
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for _, y := range refdata.Years(d.Now()) {
		v.years = append(v.years, strconv.Itoa(y))
	}
	v.inputs = make([]textinput.Model, len(valuation.Fields))
	for i := range valuation.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.Width = 24
		v.inputs[i] = ti
	}
	v.sync()
	v.inputs[0].Focus()
	return v
}

func (v *valuationView) Init() tea.Cmd { return textinput.Blink }

// sync copies the workflow's field values back into the inputs.
func (v *valuationView) sync() {
	for i, name := range valuation.Fields {
		v.inputs[i].SetValue(v.wf.FieldValue(name))
	}
}

// choices lists the fixed options of a select-style field, nil otherwise.
func (v *valuationView) choices(name string) []string {
	switch name {
	case valuation.FieldManufacturer:
		return refdata.Manufacturers()
	case valuation.FieldModel:
		return refdata.Models(v.wf.Input().Manufacturer)
	case valuation.FieldYear:
		return v.years
	case valuation.FieldTransmission:
		return refdata.Transmissions
	case valuation.FieldFuelType:
		return refdata.FuelTypes
	}
	return nil
}

// commit applies the focused input to the workflow. A locked form keeps
// its values.
func (v *valuationView) commit() bool {
	name := valuation.Fields[v.focus]
	_, err := v.wf.SetField(name, v.inputs[v.focus].Value())
	v.sync()
	if err != nil {
		v.note = err.Error()
		return false
	}
	v.note = ""
	return true
}

func (v *valuationView) move(delta int) {
	v.commit()
	v.inputs[v.focus].Blur()
	n := len(v.inputs)
	v.focus = ((v.focus+delta)%n + n) % n
	v.inputs[v.focus].Focus()
}

func (v *valuationView) cycle(delta int) {
	name := valuation.Fields[v.focus]
	opts := v.choices(name)
	if len(opts) == 0 {
		return
	}
	cur := v.wf.FieldValue(name)
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = (i + delta + len(opts)) % len(opts)
			break
		}
	}
	if _, err := v.wf.SetField(name, opts[idx]); err != nil {
		v.note = err.Error()
	}
	v.sync()
}

func (v *valuationView) analyze() tea.Cmd {
	if !v.wf.Locked() && !v.commit() {
		return nil
	}
	in, err := v.wf.Begin()
	if err != nil {
		return nil
	}
	submit := v.submit
	return tea.Batch(v.spin.Tick, v.life.run(func(ctx context.Context) tea.Msg {
		price, err := submit.Submit(ctx, in)
		return predictDoneMsg{price: price, err: err}
	}))
}

func (v *valuationView) Update(f frame, msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case predictDoneMsg:
		if m.err != nil {
			v.deps.Log.Error().Err(m.err).Msg("predict failed")
			v.wf.Fail(f.tr.ConnError)
			return nil
		}
		v.wf.Resolve(m.price)
		v.deps.Log.Info().Float64("price_usd", m.price).Msg("valuation locked")
		return nil
	case spinner.TickMsg:
		if v.wf.State() != valuation.Loading {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(m)
		return cmd
	case tea.KeyMsg:
		return v.handleKey(m)
	}
	return nil
}

func (v *valuationView) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, keyReset):
		v.wf.Reset()
		v.sync()
		return nil
	case key.Matches(m, keyUp):
		v.move(-1)
		return nil
	case key.Matches(m, keyDown):
		v.move(1)
		return nil
	case key.Matches(m, keySubmit):
		return v.analyze()
	case key.Matches(m, keyLeft), key.Matches(m, keyRight):
		if v.choices(valuation.Fields[v.focus]) != nil {
			if v.wf.Locked() || v.wf.State() == valuation.Loading {
				return nil
			}
			delta := 1
			if key.Matches(m, keyLeft) {
				delta = -1
			}
			v.cycle(delta)
			return nil
		}
	}
	// field edits are no-ops while locked or in flight
	if v.wf.Locked() || v.wf.State() == valuation.Loading {
		return nil
	}
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(m)
	return cmd
}

func fieldLabel(tr refdata.Translation, name string) string {
	switch name {
	case valuation.FieldManufacturer:
		return tr.Manufacturer
	case valuation.FieldModel:
		return tr.Model
	case valuation.FieldYear:
		return tr.Year
	case valuation.FieldTransmission:
		return tr.Transmission
	case valuation.FieldMileage:
		return tr.Mileage
	case valuation.FieldFuelType:
		return tr.FuelType
	case valuation.FieldTax:
		return tr.Tax
	case valuation.FieldMPG:
		return tr.MPG
	case valuation.FieldEngineSize:
		return tr.EngineSize
	}
	return name
}

func (v *valuationView) View(f frame) string {
	var rows []string
	for i, name := range valuation.Fields {
		marker := "  "
		if i == v.focus {
			marker = f.st.cursor.Render("▶ ")
		}
		value := f.st.value.Render(v.wf.FieldValue(name))
		if i == v.focus && !v.wf.Locked() {
			value = v.inputs[i].View()
		}
		if v.choices(name) != nil {
			value += f.st.muted.Render(" ‹›")
		}
		rows = append(rows, marker+padRight(f.st.label.Render(fieldLabel(f.tr, name)), 16)+value)
	}
	if v.note != "" {
		rows = append(rows, "", f.st.errText.Render(v.note))
	}
	form := f.st.section.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	panel := f.st.section.Width(40).Render(v.panel(f))
	if f.width > 0 && f.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, form, panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form, panel)
}

func (v *valuationView) panel(f frame) string {
	switch v.wf.State() {
	case valuation.Loading:
		return v.spin.View() + " " + f.st.title.Render(f.tr.Analyzing) + "\n" + f.st.muted.Render(f.tr.AnalyzingDesc)
	case valuation.Result:
		return lipgloss.JoinVertical(lipgloss.Left,
			f.st.label.Render(f.tr.EstimatedValue),
			f.st.price.Render(f.money.Format(v.wf.Price())),
			f.st.muted.Render(f.tr.Accuracy),
			"",
			f.st.locked.Render("■ "+f.tr.Locked),
			f.st.muted.Render(f.tr.LockedDesc),
			f.st.helpKey.Render("ctrl+r")+" "+f.tr.Reset,
		)
	case valuation.Failed:
		return f.st.errText.Render(f.tr.Error) + "\n" + v.wf.ErrMessage()
	}
	return f.st.title.Render(f.tr.Ready) + "\n" + f.st.muted.Render(f.tr.ReadyDesc) + "\n\n" +
		f.st.helpKey.Render("enter") + " " + f.tr.AnalyzeBtn
}

func (v *valuationView) Help() []key.Binding {
	return []key.Binding{keyUp, keyLeft, keySubmit, keyReset}
}

type predictDoneMsg struct {
	price float64
	err   error
}
