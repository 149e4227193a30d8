package types

// LogLevel tags audit events. Business, security and error events are also
// persisted; the rest only reach the process log.
type LogLevel string

const (
	LogLevelInfo        LogLevel = "info"
	LogLevelBusiness    LogLevel = "business"
	LogLevelSecurity    LogLevel = "security"
	LogLevelError       LogLevel = "error"
	LogLevelWarn        LogLevel = "warn"
	LogLevelPerformance LogLevel = "performance"
	LogLevelAccess      LogLevel = "access"
)

// Persisted reports whether entries at this level are written to system_logs.
func (l LogLevel) Persisted() bool {
	return l == LogLevelSecurity || l == LogLevelError || l == LogLevelBusiness
}
