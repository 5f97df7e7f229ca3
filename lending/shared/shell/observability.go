package shell

// Logger interface for operational logging in handlers that process
// events or commands. It is dependency-free on purpose; *slog.Logger
// satisfies it directly, as does any structured logger with the same
// message-plus-attrs shape.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
