package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoprestige/autoprestige/internal/money"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

// frame is everything a view needs to render for one update cycle.
type frame struct {
	AppContext
	tr     refdata.Translation
	st     styles
	money  money.Formatter
	width  int
	height int
}

func newFrame(ac AppContext, width, height int) frame {
	return frame{
		AppContext: ac,
		tr:         refdata.Bundle(ac.Lang),
		st:         newStyles(ac.Theme),
		money:      money.Formatter{Code: ac.Currency},
		width:      width,
		height:     height,
	}
}

// contentWidth is the usable width inside a section border.
func (f frame) contentWidth() int {
	if f.width <= 0 {
		return 76
	}
	w := f.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// ---------------------------------------------------------------------------
// Section & chrome rendering
// ---------------------------------------------------------------------------

func renderHeader(f frame, active refdata.Tab, banner string) string {
	var b strings.Builder
	if banner != "" && (f.height == 0 || f.height >= 34) {
		b.WriteString(f.st.banner.Render(strings.TrimRight(banner, "\n")))
		b.WriteString("\n")
	}
	b.WriteString(f.st.title.Render(f.tr.Title) + "  " + f.st.subtitle.Render(f.tr.Subtitle))
	b.WriteString("\n")

	tabs := make([]string, 0, len(refdata.Tabs))
	for i, tab := range refdata.Tabs {
		label := fmt.Sprintf("%d %s", i+1, f.tr.Nav[tab])
		if tab == active {
			tabs = append(tabs, f.st.activeTab.Render(label))
		} else {
			tabs = append(tabs, f.st.inactiveTab.Render(label))
		}
	}
	bar := strings.Join(tabs, f.st.tabSep.Render("│"))
	ctx := f.st.muted.Render(fmt.Sprintf("%s · %s · %s", strings.ToUpper(f.Lang), f.Currency, f.Theme))
	b.WriteString(f.st.headerBar.Render(bar + "  " + ctx))
	return b.String()
}

func renderSection(f frame, title, content string) string {
	w := f.contentWidth()
	sep := f.st.tabSep.Render(strings.Repeat("─", w))
	return f.st.section.Width(w + 2).Render(f.st.title.Render(title) + "\n" + sep + "\n" + content)
}

func renderFooter(f frame, bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, f.st.helpKey.Render(help.Key)+" "+f.st.helpDesc.Render(help.Desc))
	}
	content := strings.Join(parts, "  ")
	if f.width == 0 {
		return f.st.footer.Render(content)
	}
	return f.st.footer.Width(f.width).Render(content)
}

func renderStatus(f frame, text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	if f.width == 0 {
		return f.st.statusBar.Render(flat)
	}
	return f.st.statusBar.Width(f.width).Render(flat)
}

// renderCards lays stat cards out side by side.
func renderCards(f frame, cards ...[2]string) string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, f.st.card.Render(f.st.label.Render(c[0])+"\n"+f.st.price.Render(c[1])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
