package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial content size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithMinSize sets the minimum size the window may be resized to.
//
// Parameters:
//   - width: minimum width in pixels
//   - height: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}

// WithMaxSize sets the maximum size the window may be resized to. Zero leaves a dimension unbounded.
//
// Parameters:
//   - width: maximum width in pixels
//   - height: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = width
		w.maxHeight = height
	}
}
