package eventlog

// Retention defaults
const (
	// DefaultRetentionDays is how long audit rows are kept before the
	// cleanup job removes them.
	DefaultRetentionDays = 90

	// DefaultHistoryLimit caps a history query when the caller does not
	// specify a limit.
	DefaultHistoryLimit = 50

	// MaxHistoryLimit is the hard ceiling for a single history query.
	MaxHistoryLimit = 200
)

// Log messages - service events
const (
	LogMsgFailedToLogEvent = "Failed to log event to database"
	LogMsgEventLogged      = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
	LogMsgCleanupJobStopped   = "Event log cleanup job stopped"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
)
