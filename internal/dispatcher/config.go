package dispatcher

// DefaultErrorHistory is the number of failures retained.
const DefaultErrorHistory = 10

// Logger is the subset of the application logger the dispatcher uses.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	// Debug mode disables recovery regardless.
	RecoverFromPanic bool

	// ErrorHistory bounds the recorded failures.
	ErrorHistory int

	// Debug lets failures propagate instead of becoming status messages.
	Debug bool

	// Logger receives dispatch diagnostics.
	Logger Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		ErrorHistory:     DefaultErrorHistory,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithDebug returns a copy of the config with debug set.
func (c Config) WithDebug(debug bool) Config {
	c.Debug = debug
	return c
}

// WithLogger returns a copy of the config with the logger set.
func (c Config) WithLogger(l Logger) Config {
	c.Logger = l
	return c
}
