package engine

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
)

// SessionBuilderOption is a functional option for configuring a Session.
// Use the With* functions to create options that are applied directly to the session instance.
type SessionBuilderOption func(*session)

// WithRendererFactory replaces the WebGPU renderer with another implementation.
// A nil factory is ignored.
//
// Parameters:
//   - factory: function creating the renderer for the mount window
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithRendererFactory(factory renderer.Factory) SessionBuilderOption {
	return func(s *session) {
		if factory != nil {
			s.rendererFactory = factory
		}
	}
}

// WithRendererOptions passes options through to the renderer factory.
//
// Parameters:
//   - options: renderer options such as present mode, MSAA or shadows
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) SessionBuilderOption {
	return func(s *session) {
		s.rendererOptions = append(s.rendererOptions, options...)
	}
}

// WithWorkerPool sets the pool the scene geometry is built on. Without it a short-lived pool
// sized to the machine is used.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithWorkerPool(pool worker.DynamicWorkerPool) SessionBuilderOption {
	return func(s *session) {
		s.pool = pool
	}
}
