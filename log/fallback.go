package log

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// NewFallbackLogger returns a stderr logger for situations where no
// daemon callbacks struct is available, such as hosts predating the v3
// plugin API or unit tests. OpenVPN leaves stderr attached to the
// terminal until it daemonizes, so early errors remain visible.
func NewFallbackLogger(level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}
