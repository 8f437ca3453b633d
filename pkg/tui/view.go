package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arohiabhilasha/FocusFlow/pkg/util"
	"github.com/arohiabhilasha/FocusFlow/pkg/widget"
)

func (m Model) View() string {
	if m.widgetMode {
		var b strings.Builder
		b.WriteString(widgetStyle.Render(m.renderWidget()))
		b.WriteString("\n")
		m.writeFooter(&b, "↑/↓ move • space done • w full view • q quit")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("FocusFlow"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabToday:
		b.WriteString(widgetStyle.Render(m.renderWidget()))
	case tabManage:
		b.WriteString(m.renderList())
	}
	b.WriteString("\n\n")

	if m.inputMode != inputNone {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	help := "tab switch • a add • s suggest • space done • c clear done • w widget • q quit"
	if m.tab == tabManage {
		help = "tab switch • a add • e describe • d delete • space done • c clear done • w widget • q quit"
	}
	m.writeFooter(&b, help)
	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, t := range []tab{tabToday, tabManage} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderWidget() string {
	v := widget.Select(m.snap.tasks, widget.ScrollLimit)

	var b strings.Builder
	b.WriteString(headingStyle.Render("Priority Goals"))
	b.WriteString("\n")
	if v.AllDone {
		b.WriteString(allDoneStyle.Render("✓ All Done"))
		return b.String()
	}

	cursor := clampCursor(m.cursor, len(v.Tasks))
	for i, slot := range v.Slots() {
		if i > 0 {
			b.WriteString("\n")
		}
		if slot.Placeholder {
			b.WriteString(placeholderStyle.Render("  ┄"))
			continue
		}
		title := m.fit(slot.Task.Title, 6)
		if i == cursor {
			b.WriteString(selectedStyle.Render("> ○ " + title))
		} else {
			b.WriteString("  ○ " + title)
		}
	}
	return b.String()
}

func (m Model) renderList() string {
	ts := m.snap.tasks
	if len(ts) == 0 {
		return "No tasks yet. Press 'a' to add one."
	}

	done := 0
	for _, t := range ts {
		if t.Completed {
			done++
		}
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("All tasks (%d of %d done)", done, len(ts))))
	b.WriteString("\n")

	cursor := clampCursor(m.cursor, len(ts))
	for i, t := range ts {
		checkbox := "[ ]"
		title := m.fit(t.Title, 8)
		if t.Completed {
			checkbox = "[x]"
			title = doneStyle.Render(title)
		}

		if i == cursor {
			b.WriteString(selectedStyle.Render(">") + " " + checkbox + " " + title)
		} else {
			b.WriteString("  " + checkbox + " " + title)
		}
		b.WriteString("\n")

		if i == cursor && t.HasDescription() {
			b.WriteString(descriptionStyle.Render("      " + m.fit(util.FirstLine(t.DescriptionText()), 8)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) writeFooter(b *strings.Builder, help string) {
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if err := m.store.LastSaveError(); err != nil {
		b.WriteString(warningStyle.Render(fmt.Sprintf("⚠ Changes could not be saved: %v", err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(help))
}

// fit cuts s so a row with indent leading cells stays inside the window.
func (m Model) fit(s string, indent int) string {
	if m.width <= 0 {
		return s
	}
	return util.Truncate(s, max(m.width-indent, 1))
}
