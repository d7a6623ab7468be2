package mdrtf

import (
	"context"
	"log/slog"
	"os"

	"github.com/muesli/reflow/truncate"
)

// previewWidth bounds the text shown for a text run in debug traces.
const previewWidth = 40

// nopHandler discards all records. Enabled returns false so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// resolveLogger picks the logger of a render: the injected one, a stderr
// debug logger when FlagDebug is set, or a silent one.
func resolveLogger(l *slog.Logger, flags Flags) *slog.Logger {
	if l != nil {
		return l
	}
	if flags&FlagDebug != 0 {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return newNopLogger()
}

func textPreview(text []byte) string {
	return truncate.StringWithTail(string(text), previewWidth, "…")
}
