package worker

// ============================================================================
// Log Messages - Daily Reset Worker
// ============================================================================

// Log messages for daily reset sweep operations
const (
	LogMsgDailyResetStandby   = "Daily reset sweep in standby"
	LogMsgDailyResetApproach  = "Daily reset sweep scheduled"
	LogMsgDailyResetStarting  = "Daily reset sweep starting"
	LogMsgDailyResetCompleted = "Daily reset sweep completed"
	LogMsgDailyResetFailed    = "Daily reset sweep failed"
	LogMsgUserResetFailed     = "Daily reset failed for user"
)
