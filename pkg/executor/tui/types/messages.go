package types

// Overlays never call the controller themselves. They return commands that
// produce these messages, and the model handles them in Update.

// EditSubmitMsg is sent when the editor's content should be saved
type EditSubmitMsg struct {
	Content string
}

// EditCancelMsg is sent when the editor is closed without saving
type EditCancelMsg struct{}

// ConfirmResultMsg carries the answer to a confirm overlay. ID is the id the
// overlay was created with, so a late answer cannot be taken for a newer prompt.
type ConfirmResultMsg struct {
	ID  int
	Yes bool
}
