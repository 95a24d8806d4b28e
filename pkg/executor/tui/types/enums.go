package types

// OverlayMode represents the current overlay state
type OverlayMode int

const (
	// OverlayModeNone indicates no overlay is active
	OverlayModeNone OverlayMode = iota
	// OverlayModeEditor shows the memo edit overlay
	OverlayModeEditor
	// OverlayModeMessage shows a message the user must acknowledge
	OverlayModeMessage
	// OverlayModeConfirm shows a yes/no question
	OverlayModeConfirm
)

// String returns the mode name used in debug logs.
func (m OverlayMode) String() string {
	switch m {
	case OverlayModeNone:
		return "none"
	case OverlayModeEditor:
		return "editor"
	case OverlayModeMessage:
		return "message"
	case OverlayModeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}
