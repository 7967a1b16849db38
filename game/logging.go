package game

import (
	"io"
	"log/slog"
)

// NewLogger returns the process logger: JSON for headless runs so output can
// be piped into tooling, text otherwise.
func NewLogger(w io.Writer, headless bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if headless {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// logState logs a one-line summary of the engine.
func (g *Game) logState(msg string) {
	slog.Info(msg,
		"tick", g.tick,
		"sim_time", g.engine.Clock(),
		"particles", g.engine.Len(),
		"population", g.engine.Population(),
		"paused", g.paused,
	)
}
