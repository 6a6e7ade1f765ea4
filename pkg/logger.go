package noise

type Logger interface {
	Debug(message string, module string)
	Info(message string, module string)
	Warning(message string, module string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string)   {}
func (nopLogger) Info(string, string)    {}
func (nopLogger) Warning(string, string) {}
func (nopLogger) Error(string)           {}

var logger Logger = nopLogger{}

func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	logger = l
}
