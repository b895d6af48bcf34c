package i

// Logger is the leveled logger the services write to.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
