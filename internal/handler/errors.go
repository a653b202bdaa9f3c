package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// User-facing messages derived from domain errors
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgTaskNotFoundError   = "Task not found"
	ErrMsgQuestNotFoundError  = "Quest not found"
	ErrMsgBossNotFoundError   = "Boss not found"
	ErrMsgAttackNotFoundError = "Attack not found"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgNotEnoughCoinsError = "Not enough coins"
	ErrMsgAlreadyOwnedError   = "You already own that item"
	ErrMsgNoPointsError       = "No attribute points available"
	ErrMsgTitleLockedError    = "That title is not unlocked"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
)

// Success messages for API responses
const (
	MsgAlreadyComplete      = "Already completed, nothing to do"
	MsgTaskDeletedSuccess   = "Task deleted successfully"
	MsgTaskReopenedSuccess  = "Task reopened"
	MsgTitleSelectedSuccess = "Title selected"
	MsgThemeSelectedSuccess = "Theme selected"
)
