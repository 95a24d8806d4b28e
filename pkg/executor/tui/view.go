package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI interface.
// This is called by Bubble Tea whenever the UI needs to be redrawn.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	baseView := lipgloss.JoinVertical(lipgloss.Left,
		m.buildHeader(),
		m.buildListRegion(),
		m.buildInputBox(),
		m.buildBottomBar(),
	)

	if m.overlay.isActive() {
		return renderOverlay(baseView, m.overlay.overlay, m.width, m.height)
	}
	return baseView
}

// buildHeader renders the title line and usage tips
func (m *model) buildHeader() string {
	title := headerStyle.Render("  memopad")
	tips := tipsStyle.Render("  ↑/↓ select • Ctrl+E edit • Ctrl+D delete • Ctrl+Y copy • Ctrl+C quit")
	return title + "\n" + tips
}

// buildListRegion renders the memo list, or the placeholder when it is empty
func (m *model) buildListRegion() string {
	style := listBoxStyle.Width(max(m.width-2, 10)).Height(m.listHeight())
	if m.view.Empty() {
		return style.Render(placeholderStyle.Render(m.view.Placeholder))
	}
	return style.Render(m.list.View())
}

// buildInputBox renders the create input
func (m *model) buildInputBox() string {
	return inputBoxStyle.Width(max(m.width-4, 10)).Render(m.textarea.View())
}

// buildBottomBar renders the memo count and input hints
func (m *model) buildBottomBar() string {
	left := memoCount(len(m.view.Items))
	right := "Enter to save • Alt+Enter for new line"

	padding := m.width - len(left) - len(right) - 2
	if padding < 2 {
		padding = 2
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

func memoCount(n int) string {
	if n == 1 {
		return "1 memo"
	}
	return fmt.Sprintf("%d memos", n)
}
