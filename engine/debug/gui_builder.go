package debug

// GUIBuilderOption is a functional option for configuring a GUI.
type GUIBuilderOption func(*guiImpl)

// WithTitle sets the panel title.
//
// Parameters:
//   - title: the title shown in the panel header
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithTitle(title string) GUIBuilderOption {
	return func(g *guiImpl) {
		g.title = title
	}
}

// WithWidth sets the panel width in pixels. Non-positive widths are ignored.
//
// Parameters:
//   - width: panel width
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithWidth(width int) GUIBuilderOption {
	return func(g *guiImpl) {
		if width > 0 {
			g.width = width
		}
	}
}

// WithClosed starts the panel collapsed.
//
// Parameters:
//   - closed: whether the panel starts collapsed
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithClosed(closed bool) GUIBuilderOption {
	return func(g *guiImpl) {
		g.closed = closed
	}
}

// WithHidden starts the panel hidden.
//
// Parameters:
//   - hidden: whether the panel starts hidden
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithHidden(hidden bool) GUIBuilderOption {
	return func(g *guiImpl) {
		g.hidden = hidden
	}
}

// WithCloseFolders makes every folder created by AddFolder start collapsed.
//
// Parameters:
//   - closed: whether new folders start collapsed
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithCloseFolders(closed bool) GUIBuilderOption {
	return func(g *guiImpl) {
		g.closeFolder = closed
	}
}
