package mdrtf

import "log/slog"

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	logger          *slog.Logger
	maxOutput       int
	keepFrontMatter bool
}

// WithLogger sets the logger used for debug tracing and diagnostics.
func WithLogger(l *slog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = l
	}
}

// WithMaxOutput bounds the number of RTF bytes a render may produce. Zero
// means no limit. A render that would exceed the limit fails with
// ErrSinkCapacity.
func WithMaxOutput(n int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.maxOutput = n
	}
}

// WithFrontMatter keeps or drops YAML, TOML and JSON front matter at the
// start of the source. Front matter is dropped by default.
func WithFrontMatter(keep bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.keepFrontMatter = keep
	}
}

func buildRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
