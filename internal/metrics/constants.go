package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameTasksCompleted       = "tasks_completed_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameXPGranted            = "xp_granted_total"
	MetricNameCoinsEarned          = "coins_earned_total"
	MetricNameCoinsSpent           = "coins_spent_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameBossesDefeated       = "bosses_defeated_total"
	MetricNameBossDamageDealt      = "boss_damage_dealt_total"
	MetricNameItemsPurchased       = "items_purchased_total"
	MetricNameDailyResets          = "daily_resets_total"
	MetricNameStreaksBroken        = "streaks_broken_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextTasksCompleted       = "Total number of tasks and daily quests completed"
	HelpTextLevelUps             = "Total number of level-ups"
	HelpTextXPGranted            = "Total XP granted to users"
	HelpTextCoinsEarned          = "Total coins granted to users"
	HelpTextCoinsSpent           = "Total coins spent in the shop"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextBossesDefeated       = "Total number of bosses defeated"
	HelpTextBossDamageDealt      = "Total boss damage dealt"
	HelpTextItemsPurchased       = "Total number of shop items purchased"
	HelpTextDailyResets          = "Total number of daily resets performed"
	HelpTextStreaksBroken        = "Total number of streaks broken"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelRank   = "rank"
	LabelItem   = "item"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded = "metrics recorded for event"
)

// HTTPLatencyBuckets covers the expected latency range for API handlers.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
