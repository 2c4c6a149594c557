package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoprestige/autoprestige/internal/chat"
)

type chatView struct {
	deps  Deps
	life  lifetime
	log   *chat.Transcript
	input textinput.Model
	vp    viewport.Model
	spin  spinner.Model
}

func newChatView(f frame, d Deps, l lifetime) *chatView {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = f.tr.ChatPlaceholder
	ti.CharLimit = 500
	ti.Width = 70
	ti.Focus()
	v := &chatView{
		deps:  d,
		life:  l,
		log:   chat.NewTranscript(f.tr.ChatSeed, f.tr.ChatFailure),
		input: ti,
		vp:    viewport.New(76, 12),
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	v.refresh(f)
	return v
}

func (v *chatView) Init() tea.Cmd { return textinput.Blink }

// refresh re-renders the transcript and scrolls to the latest entry.
func (v *chatView) refresh(f frame) {
	width := v.vp.Width - 2
	if width < 10 {
		width = 10
	}
	var blocks []string
	for _, m := range v.log.Messages() {
		switch {
		case m.Role == chat.RoleUser:
			blocks = append(blocks, lipgloss.NewStyle().Width(width).Align(lipgloss.Right).
				Render(f.st.userBubble.Render(m.Content)))
		case m.Failed:
			blocks = append(blocks, f.st.failBubble.Width(width).Render("! "+m.Content))
		default:
			blocks = append(blocks, f.st.botBubble.Width(width).Render(m.Content))
		}
	}
	v.vp.SetContent(strings.Join(blocks, "\n\n"))
	v.vp.GotoBottom()
}

func (v *chatView) send() tea.Cmd {
	text, err := v.log.Send(v.input.Value())
	if err != nil {
		return nil
	}
	v.input.Reset()
	backend := v.deps.Backend
	return tea.Batch(v.spin.Tick, v.life.run(func(ctx context.Context) tea.Msg {
		reply, err := backend.Chat(ctx, text)
		return chatReplyMsg{text: reply, err: err}
	}))
}

func (v *chatView) Update(f frame, msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = f.contentWidth()
		v.vp.Height = max(m.Height-18, 5)
		v.input.Width = f.contentWidth() - 4
		v.refresh(f)
		return nil
	case contextChangedMsg:
		v.refresh(f)
		return nil
	case chatReplyMsg:
		if m.err != nil {
			v.deps.Log.Error().Err(m.err).Msg("chat failed")
			v.log.Fail()
		} else {
			v.log.Reply(m.text)
		}
		v.refresh(f)
		return nil
	case spinner.TickMsg:
		if !v.log.Composing() {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(m)
		return cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keySend):
			cmd := v.send()
			v.refresh(f)
			return cmd
		case key.Matches(m, keyScroll):
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(m)
			return cmd
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(m)
		return cmd
	}
	return nil
}

func (v *chatView) View(f frame) string {
	status := ""
	if v.log.Composing() {
		status = v.spin.View() + " " + f.st.muted.Render(f.tr.ChatComposing)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		f.st.muted.Render(f.tr.ChatDesc),
		"",
		v.vp.View(),
		status,
		v.input.View(),
	)
	return renderSection(f, f.tr.ChatTitle, body)
}

func (v *chatView) Help() []key.Binding {
	return []key.Binding{keySend, keyScroll}
}

type chatReplyMsg struct {
	text string
	err  error
}
