package models

// SignupRequest creates a new account.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LogEventRequest is the payload for logging one event. Severity bounds
// are validated in the service layer so the error shape matches the
// store's, not gin's.
type LogEventRequest struct {
	Trigger    string `json:"trigger" binding:"required"`
	Behavior   string `json:"behavior" binding:"required"`
	Severity   int    `json:"severity"`
	Reflection string `json:"reflection"`
}
