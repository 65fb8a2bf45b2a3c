package domain

import "time"

// Credentials are the email/password inputs sent by Register and Login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what can be read from a stored JWT bearer token without
// verifying it. It is informational only.
type Session struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}
