package application

// Principal is the authenticated identity attached to a request. The session
// middleware resolves it once from the session token and injects it into
// every mutating operation; services never reach into ambient auth state.
type Principal struct {
	UserID int64
	Email  string
	Guard  string
}
