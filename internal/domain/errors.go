package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound    = "user not found"
	ErrMsgBossNotFound    = "boss not found"
	ErrMsgAttackNotFound  = "attack not found"
	ErrMsgTaskNotFound    = "task not found"
	ErrMsgQuestNotFound   = "quest not found"
	ErrMsgItemNotFound    = "item not found"
	ErrMsgTitleNotFound   = "title not unlocked"
	ErrMsgAchievementGone = "achievement not found"

	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNoAttributePoints = "no attribute points available"
	ErrMsgAlreadyComplete   = "already complete"
	ErrMsgAlreadyOwned      = "item already owned"
	ErrMsgInvalidInput      = "invalid input"
)

// Common domain errors.
// These errors should be used consistently across all layers of the
// application. Wrap them with fmt.Errorf("%w: %s", domain.ErrXxx, details)
// for additional context.
var (
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrBossNotFound        = errors.New(ErrMsgBossNotFound)
	ErrAttackNotFound      = errors.New(ErrMsgAttackNotFound)
	ErrTaskNotFound        = errors.New(ErrMsgTaskNotFound)
	ErrQuestNotFound       = errors.New(ErrMsgQuestNotFound)
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)
	ErrTitleNotUnlocked    = errors.New(ErrMsgTitleNotFound)
	ErrAchievementNotFound = errors.New(ErrMsgAchievementGone)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNoAttributePoints = errors.New(ErrMsgNoAttributePoints)

	// ErrAlreadyComplete marks duplicate completion triggers (double-tap,
	// second tab). Callers treat it as a no-op, not a failure.
	ErrAlreadyComplete = errors.New(ErrMsgAlreadyComplete)

	ErrAlreadyOwned = errors.New(ErrMsgAlreadyOwned)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
