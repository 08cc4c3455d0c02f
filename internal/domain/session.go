package domain

// SessionStatus is the derived state of the client session.
type SessionStatus string

const (
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionResolving       SessionStatus = "resolving"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionInvalid         SessionStatus = "invalid"
)

type User struct {
	ID    string
	Email string
	Name  string
	Phone string
}

// Session holds the bearer credential and the profile it resolved to.
// Status is Authenticated only while both are present and the last
// profile fetch succeeded.
type Session struct {
	Token  string
	User   *User
	Status SessionStatus
}

func (s Session) Authenticated() bool {
	return s.Status == SessionAuthenticated && s.Token != "" && s.User != nil
}
