package domain

// Fixed user-facing strings shown by the page.
const (
	MsgRegistered     = "Registered!"
	MsgLoggedIn       = "Logged in!"
	MsgLoggedOut      = "Logged out!"
	MsgJobAdded       = "Job added!"
	MsgProfileLoaded  = "Profile loaded"
	ErrMsgRegister    = "Register failed"
	ErrMsgLogin       = "Login failed"
	ErrMsgLoginError  = "Login error"
	ErrMsgLoginFirst  = "Please login first"
	ErrMsgAddJob      = "Add job failed"
	ErrMsgLoadJobs    = "Cannot load jobs"
	ErrMsgSearchJobs  = "Cannot search jobs"
	ErrMsgLoadProfile = "Cannot load profile"
)
