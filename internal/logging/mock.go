package logging

// MockLogger captures log entries for verification in tests. Derived loggers
// returned by WithError/WithField record into the same backing store, so a
// test can assert against the root mock regardless of how the code under
// test chained its fields.
type MockLogger struct {
	entries       *[]LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry is a single message captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger creates an empty capturing logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{entries: &[]LogEntry{}}
}

// Entries returns every captured entry, in order.
func (m *MockLogger) Entries() []LogEntry {
	return *m.entries
}

func (m *MockLogger) log(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.log("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.log("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.log("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.log("ERROR", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{entries: m.entries, pendingError: err, pendingFields: m.pendingFields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	fields := append(append([]Field{}, m.pendingFields...), Field{Key: key, Value: value})
	return &MockLogger{entries: m.entries, pendingError: m.pendingError, pendingFields: fields}
}

// HasMessage reports whether any captured entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range m.Entries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}
