package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
	"github.com/entrhq/memopad/pkg/presenter"
)

// memoItem is one row of the memo list. It carries the bound triggers so
// the edit and delete keys fire the presenter's callbacks.
type memoItem struct {
	presenter.Bound
}

func (i memoItem) FilterValue() string {
	return i.Content
}

func (i memoItem) Title() string {
	return i.Preview
}

func (i memoItem) Description() string {
	if i.UpdatedAt != "" {
		return fmt.Sprintf("#%d • created %s • edited %s", i.ID, i.CreatedAt, i.UpdatedAt)
	}
	return fmt.Sprintf("#%d • created %s", i.ID, i.CreatedAt)
}

// newMemoList creates the list region with the memopad theme
func newMemoList() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(types.SalmonPink).
		BorderForeground(types.SalmonPink)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(types.MutedGray).
		BorderForeground(types.SalmonPink)

	l := list.New([]list.Item{}, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

// toListItems converts bound descriptors to list items
func toListItems(bound []presenter.Bound) []list.Item {
	items := make([]list.Item, len(bound))
	for i, b := range bound {
		items[i] = memoItem{Bound: b}
	}
	return items
}
