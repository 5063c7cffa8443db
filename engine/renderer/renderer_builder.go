package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLabel sets the debug label of the renderer's surface.
//
// Parameters:
//   - label: the surface label
//
// Returns:
//   - RendererBuilderOption: a function that applies the label option to a renderer
func WithLabel(label string) RendererBuilderOption {
	return func(r *renderer) {
		r.label = label
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
// Higher values (MSAA8x, MSAA16x) are adapter-dependent and may not be supported
// by all hardware.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff, MSAA4x, MSAA8x, or MSAA16x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithShadows toggles the directional shadow pass. Shadows are on by default.
//
// Parameters:
//   - enabled: false skips the shadow pass and unshadows every receiver
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow option to a renderer
func WithShadows(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.shadowsEnabled = enabled
	}
}
