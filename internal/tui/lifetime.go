package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// AppContext is the shell-level state every view renders with.
type AppContext struct {
	Lang     string
	Currency string
	Theme    string
}

// lifetime scopes the async work of one mounted view. Unmounting cancels
// ctx, and results tagged with an older gen are dropped by the shell.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64
}

func newLifetime(parent context.Context, gen uint64) lifetime {
	ctx, cancel := context.WithCancel(parent)
	return lifetime{ctx: ctx, cancel: cancel, gen: gen}
}

func (l lifetime) end() {
	if l.cancel != nil {
		l.cancel()
	}
}

// scopedMsg carries a view result back with the generation that issued it.
type scopedMsg struct {
	gen uint64
	msg tea.Msg
}

// run wraps fn as a command bound to this lifetime.
func (l lifetime) run(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, gen := l.ctx, l.gen
	return func() tea.Msg {
		return scopedMsg{gen: gen, msg: fn(ctx)}
	}
}
