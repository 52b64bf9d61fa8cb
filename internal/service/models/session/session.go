package session

// Session is the identity of the caller, resolved at the transport edge and
// passed explicitly into every service call. A zero UserID means the caller
// is not authenticated.
type Session struct {
	UserID int64
}

// IsAuthenticated reports whether the session resolves to a user.
func (s Session) IsAuthenticated() bool {
	return s.UserID > 0
}
