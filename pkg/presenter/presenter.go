// Package presenter turns a memo list into view descriptors.
//
// Render is pure: it maps memos to Items and knows nothing about the surface
// that displays them. Bind is the separate step that attaches edit and
// delete callbacks to each descriptor.
package presenter

import (
	"strings"
	"time"

	"github.com/entrhq/memopad/pkg/memo"
)

// Placeholder is shown instead of items when there are no memos.
const Placeholder = "No memos yet."

// PreviewLength is the maximum number of characters in Item.Preview.
const PreviewLength = 80

// timeLayout is used for the human readable timestamps on items.
const timeLayout = "2006-01-02 15:04"

// Action identifies a per-item trigger.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Trigger is a per-item action descriptor.
type Trigger struct {
	Action Action
	MemoID int64
	Label  string
}

// Item describes one rendered memo.
type Item struct {
	ID        int64
	Content   string
	Preview   string // single line, truncated
	CreatedAt string
	UpdatedAt string // empty if never edited
	Triggers  []Trigger
}

// View is the full list region.
type View struct {
	Items       []Item
	Placeholder string // set only when Items is empty
}

// Empty reports whether the view shows the placeholder.
func (v View) Empty() bool {
	return len(v.Items) == 0
}

// Render maps memos, in the given order, to a View.
func Render(memos []memo.Memo) View {
	if len(memos) == 0 {
		return View{Placeholder: Placeholder}
	}

	items := make([]Item, 0, len(memos))
	for _, m := range memos {
		item := Item{
			ID:        m.ID,
			Content:   m.Content,
			Preview:   preview(m.Content, PreviewLength),
			CreatedAt: m.RawCreatedAt,
			Triggers: []Trigger{
				{Action: ActionEdit, MemoID: m.ID, Label: "Edit"},
				{Action: ActionDelete, MemoID: m.ID, Label: "Delete"},
			},
		}
		if !m.CreatedAt.IsZero() {
			item.CreatedAt = formatTime(m.CreatedAt)
		}
		switch {
		case m.UpdatedAt != nil:
			item.UpdatedAt = formatTime(*m.UpdatedAt)
		case m.RawUpdatedAt != "":
			item.UpdatedAt = m.RawUpdatedAt
		}
		items = append(items, item)
	}
	return View{Items: items}
}

// Handler receives fired triggers.
type Handler interface {
	OpenEdit(id int64) error
	RequestDelete(id int64) error
}

// Bound is an Item with its triggers attached to a Handler.
type Bound struct {
	Item
	actions map[Action]func() error
}

// Fire invokes the callback bound to action. It reports false if the item has
// no trigger for action.
func (b Bound) Fire(action Action) (bool, error) {
	fn, ok := b.actions[action]
	if !ok {
		return false, nil
	}
	return true, fn()
}

// Bind attaches handler to every trigger in view.
func Bind(view View, handler Handler) []Bound {
	bound := make([]Bound, 0, len(view.Items))
	for _, item := range view.Items {
		b := Bound{Item: item, actions: make(map[Action]func() error, len(item.Triggers))}
		for _, trig := range item.Triggers {
			id := trig.MemoID
			switch trig.Action {
			case ActionEdit:
				b.actions[ActionEdit] = func() error { return handler.OpenEdit(id) }
			case ActionDelete:
				b.actions[ActionDelete] = func() error { return handler.RequestDelete(id) }
			}
		}
		bound = append(bound, b)
	}
	return bound
}

// preview folds content onto one line and truncates it to max characters.
func preview(content string, max int) string {
	s := strings.Join(strings.Fields(content), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
