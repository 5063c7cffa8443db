package config

import (
	"flag"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/caarlos0/env/v11"
)

// Config holds viewer startup settings. Environment variables provide the defaults and
// command-line flags override them.
type Config struct {
	Title       string `env:"OXY_VIEWER_TITLE"        envDefault:"Oxy Viewer"`
	Width       int    `env:"OXY_VIEWER_WIDTH"        envDefault:"1280"`
	Height      int    `env:"OXY_VIEWER_HEIGHT"       envDefault:"720"`
	PresentMode string `env:"OXY_VIEWER_PRESENT_MODE" envDefault:"vsync"`
	MSAA        int    `env:"OXY_VIEWER_MSAA"         envDefault:"4"`
	Software    bool   `env:"OXY_VIEWER_SOFTWARE"     envDefault:"false"`
	Shadows     bool   `env:"OXY_VIEWER_SHADOWS"      envDefault:"true"`

	// Resize limits are environment-only. Zero leaves a dimension unbounded.
	MinWidth  int `env:"OXY_VIEWER_MIN_WIDTH"  envDefault:"320"`
	MinHeight int `env:"OXY_VIEWER_MIN_HEIGHT" envDefault:"200"`
	MaxWidth  int `env:"OXY_VIEWER_MAX_WIDTH"  envDefault:"0"`
	MaxHeight int `env:"OXY_VIEWER_MAX_HEIGHT" envDefault:"0"`
}

// ParseConfig loads the environment, then applies flags from args.
//
// Parameters:
//   - fs: the flag set to register flags on
//   - args: command-line arguments without the program name
//
// Returns:
//   - Config: the validated configuration
//   - error: an error if the environment, the flags or a value is invalid
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Title, "title", cfg.Title, "Window title")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Initial window width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Initial window height in pixels")
	fs.StringVar(&cfg.PresentMode, "present-mode", cfg.PresentMode, "Present mode: vsync or uncapped")
	fs.IntVar(&cfg.MSAA, "msaa", cfg.MSAA, "MSAA sample count: 1, 4, 8 or 16")
	fs.BoolVar(&cfg.Software, "software", cfg.Software, "Force the software fallback adapter")
	fs.BoolVar(&cfg.Shadows, "shadows", cfg.Shadows, "Render directional shadows")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks sizes, the present mode and the MSAA sample count.
//
// Returns:
//   - error: the first invalid value
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.MinWidth < 0 || c.MinHeight < 0 || c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("invalid window size limits min %dx%d max %dx%d", c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight)
	}
	if _, err := renderer.ParsePresentMode(c.PresentMode); err != nil {
		return err
	}
	if _, err := renderer.ParseMSAA(c.MSAA); err != nil {
		return err
	}
	return nil
}

// WindowOptions converts the window settings into window options.
//
// Returns:
//   - []window.WindowBuilderOption: title, size and resize limit options
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Title),
		window.WithSize(c.Width, c.Height),
		window.WithMinSize(c.MinWidth, c.MinHeight),
		window.WithMaxSize(c.MaxWidth, c.MaxHeight),
	}
}

// RendererOptions converts the renderer settings into renderer options.
// Call it on a validated Config.
//
// Returns:
//   - []renderer.RendererBuilderOption: present mode, MSAA, software adapter and shadow options
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	mode, _ := renderer.ParsePresentMode(c.PresentMode)
	msaa, _ := renderer.ParseMSAA(c.MSAA)
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(c.Software),
		renderer.WithShadows(c.Shadows),
	}
}
