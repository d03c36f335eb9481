package core

// Logger is any leveled logger that can report errors to an external sink.
// Extra args may carry an error, a map of details or an acting identity.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
