package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

// Backend is the remote service the views talk to.
type Backend interface {
	Predict(ctx context.Context, in api.ValuationInput) (float64, error)
	PredictBatch(ctx context.Context, filename string, r io.Reader) ([]api.BatchRow, error)
	DashboardStats(ctx context.Context) (api.DashboardStats, error)
	History(ctx context.Context) ([]api.HistoryRecord, error)
	Chat(ctx context.Context, message string) (string, error)
}

// Deps are the collaborators shared by every view.
type Deps struct {
	Backend   Backend
	UXDelay   time.Duration
	ExportDir string
	Log       zerolog.Logger
	Now       func() time.Time
	// SavePrefs persists the shell choices; nil disables ctrl+s.
	SavePrefs func(AppContext) error
}

// view is one mounted workflow. Views own their state and never see
// another view's.
type view interface {
	Init() tea.Cmd
	Update(f frame, msg tea.Msg) tea.Cmd
	View(f frame) string
	Help() []key.Binding
}

// App is the shell: tabs, shell-level context and exactly one mounted view.
type App struct {
	root    context.Context
	deps    Deps
	ac      AppContext
	tab     refdata.Tab
	life    lifetime
	gen     uint64
	current view
	pending tea.Cmd
	width   int
	height  int
	status  string
	banner  string
}

func New(ctx context.Context, deps Deps, ac AppContext) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.ExportDir == "" {
		deps.ExportDir = "."
	}
	a := &App{
		root:   ctx,
		deps:   deps,
		ac:     normalizeContext(ac),
		banner: figure.NewFigure("AutoPrestige", "", true).String(),
	}
	a.pending = a.mount(refdata.TabValuation)
	return a
}

func normalizeContext(ac AppContext) AppContext {
	if _, ok := refdata.LookupCurrency(ac.Currency); !ok {
		ac.Currency = "USD"
	}
	known := false
	for _, l := range refdata.Languages {
		known = known || l == ac.Lang
	}
	if !known {
		ac.Lang = refdata.Languages[0]
	}
	if ac.Theme != themeLight {
		ac.Theme = themeDark
	}
	return ac
}

// Context returns the current shell state.
func (a *App) Context() AppContext { return a.ac }

// Tab returns the mounted view's tab.
func (a *App) Tab() refdata.Tab { return a.tab }

func (a *App) frame() frame { return newFrame(a.ac, a.width, a.height) }

// mount ends the current view's lifetime and starts a fresh view.
func (a *App) mount(tab refdata.Tab) tea.Cmd {
	a.life.end()
	a.gen++
	a.life = newLifetime(a.root, a.gen)
	a.tab = tab
	a.status = ""
	f := a.frame()
	switch tab {
	case refdata.TabBatch:
		a.current = newBatchView(a.deps, a.life)
	case refdata.TabChat:
		a.current = newChatView(f, a.deps, a.life)
	case refdata.TabAnalysis:
		a.current = newDashboardView(a.deps, a.life)
	case refdata.TabHistory:
		a.current = newHistoryView(f, a.deps, a.life)
	default:
		a.tab = refdata.TabValuation
		a.current = newValuationView(a.deps, a.life)
	}
	a.deps.Log.Debug().Str("view", string(a.tab)).Uint64("gen", a.gen).Msg("mount")
	cmd := a.current.Init()
	if a.width > 0 {
		cmd = tea.Batch(cmd, a.current.Update(f, tea.WindowSizeMsg{Width: a.width, Height: a.height}))
	}
	return cmd
}

func (a *App) shift(delta int) refdata.Tab {
	n := len(refdata.Tabs)
	for i, t := range refdata.Tabs {
		if t == a.tab {
			return refdata.Tabs[((i+delta)%n+n)%n]
		}
	}
	return refdata.Tabs[0]
}

func (a *App) Init() tea.Cmd {
	cmd := a.pending
	a.pending = nil
	return cmd
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, a.current.Update(a.frame(), m)
	case scopedMsg:
		if m.gen != a.life.gen {
			a.deps.Log.Debug().Uint64("gen", m.gen).Uint64("current", a.life.gen).Msgf("drop stale %T", m.msg)
			return a, nil
		}
		return a, a.current.Update(a.frame(), m.msg)
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(m, shellKeys.Quit):
			a.life.end()
			return a, tea.Quit
		case key.Matches(m, shellKeys.Next):
			return a, a.mount(a.shift(1))
		case key.Matches(m, shellKeys.Prev):
			return a, a.mount(a.shift(-1))
		case key.Matches(m, shellKeys.Jump):
			s := m.String()
			return a, a.mount(refdata.Tabs[int(s[len(s)-1]-'1')])
		case key.Matches(m, shellKeys.Theme):
			a.ac.Theme = nextTheme(a.ac.Theme)
			return a, a.current.Update(a.frame(), contextChangedMsg{})
		case key.Matches(m, shellKeys.Language):
			a.ac.Lang = refdata.NextLanguage(a.ac.Lang)
			return a, a.current.Update(a.frame(), contextChangedMsg{})
		case key.Matches(m, shellKeys.Currency):
			a.ac.Currency = refdata.NextCurrency(a.ac.Currency)
			return a, a.current.Update(a.frame(), contextChangedMsg{})
		case key.Matches(m, shellKeys.Save):
			return a, a.savePrefsCmd()
		}
	}
	return a, a.current.Update(a.frame(), msg)
}

func (a *App) savePrefsCmd() tea.Cmd {
	if a.deps.SavePrefs == nil {
		return nil
	}
	ac, done := a.ac, a.frame().tr.PrefsSaved
	save := a.deps.SavePrefs
	return func() tea.Msg {
		if err := save(ac); err != nil {
			return errMsg{err}
		}
		return statusMsg(done)
	}
}

func (a *App) View() string {
	f := a.frame()
	parts := []string{renderHeader(f, a.tab, a.banner), a.current.View(f)}
	if a.status != "" {
		parts = append(parts, renderStatus(f, a.status))
	}
	parts = append(parts, renderFooter(f, append(a.current.Help(), shellKeys.help()...)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// messages
type statusMsg string

type errMsg struct{ error }

// contextChangedMsg tells the mounted view that language, currency or theme
// changed.
type contextChangedMsg struct{}
