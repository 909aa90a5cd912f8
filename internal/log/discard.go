package log

import "log/slog"

// Discard is a logger that discards all its operations.
var Discard = &Logger{slog.New(slog.DiscardHandler)}
