package constants

// Session and context keys
const (
	SessionCookieName = "genba_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Validation limits
const (
	MinPasswordLength  = 8
	TempPasswordLength = 16
)
