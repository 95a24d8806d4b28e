package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
)

// overlayState is the overlay stack. The top entry lives in mode/overlay and
// receives all input; entries below it reappear as the top one closes.
// The usual stack is editor, then a message raised by a failed save.
type overlayState struct {
	mode    types.OverlayMode
	overlay types.Overlay
	stack   []stackedOverlay
}

type stackedOverlay struct {
	mode    types.OverlayMode
	overlay types.Overlay
}

func newOverlayState() *overlayState {
	return &overlayState{mode: types.OverlayModeNone}
}

// pushOverlay shows overlay on top of whatever is open
func (o *overlayState) pushOverlay(mode types.OverlayMode, overlay types.Overlay) {
	if o.isActive() {
		o.stack = append(o.stack, stackedOverlay{mode: o.mode, overlay: o.overlay})
	}
	o.mode = mode
	o.overlay = overlay
}

// popOverlay closes the top overlay. It reports whether another one is
// now showing.
func (o *overlayState) popOverlay() bool {
	n := len(o.stack)
	if n == 0 {
		o.deactivate()
		return false
	}

	top := o.stack[n-1]
	o.stack = o.stack[:n-1]
	o.mode, o.overlay = top.mode, top.overlay
	return true
}

// remove closes every overlay of the given mode, wherever it sits in the stack
func (o *overlayState) remove(mode types.OverlayMode) {
	kept := o.stack[:0]
	for _, entry := range o.stack {
		if entry.mode != mode {
			kept = append(kept, entry)
		}
	}
	o.stack = kept

	if o.mode == mode {
		o.popOverlay()
	}
}

func (o *overlayState) deactivate() {
	o.mode = types.OverlayModeNone
	o.overlay = nil
}

func (o *overlayState) isActive() bool {
	return o.mode != types.OverlayModeNone && o.overlay != nil
}

// renderOverlay centers overlay on a blank screen. The base view is not
// drawn underneath, so the overlay reads as modal.
func renderOverlay(baseView string, overlay types.Overlay, width, height int) string {
	if overlay == nil {
		return baseView
	}

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay.View(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}

// overlayBounds returns the screen rectangle renderOverlay places view in.
// It mirrors lipgloss.Place's centering so mouse clicks can be hit-tested.
func overlayBounds(view string, width, height int) (x, y, w, h int) {
	w = lipgloss.Width(view)
	h = lipgloss.Height(view)
	x = centerOffset(width, w)
	y = centerOffset(height, h)
	return x, y, w, h
}

func centerOffset(total, size int) int {
	gap := total - size
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*0.5))
}

// inside reports whether the cell (px, py) lies within the rectangle
func inside(px, py, x, y, w, h int) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
