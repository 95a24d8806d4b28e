package overlay

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
)

// Key binding constants shared by the overlays
const (
	keyCtrlC = "ctrl+c"
	keyTab   = "tab"
	keyEnter = "enter"
	keyLeft  = "left"
	keyRight = "right"
	keyEsc   = "esc"
)

// BaseOverlay is embedded by the memo overlays. It owns the scrollable body
// and the esc/ctrl+c close keys; the embedding overlay supplies its title,
// buttons and own keys through the hooks.
type BaseOverlay struct {
	viewport viewport.Model

	onClose               func() tea.Cmd
	onCustomKey           func(msg tea.KeyMsg) (handled, closed bool, cmd tea.Cmd)
	renderHeader          func() string
	renderFooter          func() string
	footerRendersViewport bool // If true, footer is responsible for rendering viewport
}

// BaseOverlayConfig configures a base overlay
type BaseOverlayConfig struct {
	ViewportWidth  int
	ViewportHeight int
	Content        string
	// OnClose builds the command sent when a close key is pressed
	OnClose func() tea.Cmd
	// OnCustomKey sees every key before the close keys and scrolling.
	// A handled key stops there; closed asks for the overlay to close.
	OnCustomKey           func(msg tea.KeyMsg) (handled, closed bool, cmd tea.Cmd)
	RenderHeader          func() string
	RenderFooter          func() string
	FooterRendersViewport bool
}

// NewBaseOverlay creates a new base overlay with the given configuration
func NewBaseOverlay(config BaseOverlayConfig) *BaseOverlay {
	vp := viewport.New(config.ViewportWidth, config.ViewportHeight)
	vp.Style = lipgloss.NewStyle()
	if config.Content != "" {
		vp.SetContent(config.Content)
	}

	return &BaseOverlay{
		viewport:              vp,
		onClose:               config.OnClose,
		onCustomKey:           config.OnCustomKey,
		renderHeader:          config.RenderHeader,
		renderFooter:          config.RenderFooter,
		footerRendersViewport: config.FooterRendersViewport,
	}
}

// Update handles key messages for the embedding overlay.
// Returns (handled, closed, cmd). closed reports that the overlay should close.
func (b *BaseOverlay) Update(msg tea.Msg) (bool, bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return b.handleKeyMsg(keyMsg)
	}
	return false, false, nil
}

func (b *BaseOverlay) handleKeyMsg(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
	if b.onCustomKey != nil {
		if handled, closed, cmd := b.onCustomKey(msg); handled {
			return true, closed, cmd
		}
	}

	if b.isCloseKey(msg) {
		return true, true, b.close()
	}

	if b.isScrollKey(msg) {
		var cmd tea.Cmd
		b.viewport, cmd = b.viewport.Update(msg)
		return true, false, cmd
	}

	return false, false, nil
}

func (b *BaseOverlay) isCloseKey(msg tea.KeyMsg) bool {
	return msg.String() == keyEsc || msg.String() == keyCtrlC
}

func (b *BaseOverlay) isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return true
	}
	return false
}

func (b *BaseOverlay) close() tea.Cmd {
	if b.onClose != nil {
		return b.onClose()
	}
	return nil
}

// View renders the overlay with header, viewport content, and footer
func (b *BaseOverlay) View(contentWidth int) string {
	var sections []string

	if b.renderHeader != nil {
		sections = append(sections, b.renderHeader())
	}

	if !b.footerRendersViewport {
		sections = append(sections, b.viewport.View())
	}

	if b.renderFooter != nil {
		sections = append(sections, b.renderFooter())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return types.CreateOverlayContainerStyle(contentWidth).Render(content)
}

// Viewport exposes the body so overlays can size their footers to it
func (b *BaseOverlay) Viewport() *viewport.Model {
	return &b.viewport
}

// clamp keeps an overlay dimension within [lo, hi]. lo wins when lo > hi.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
