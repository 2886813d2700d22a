package session

// Status is the authentication state of the session.
type Status int

const (
	// StatusUnknown is the transient state while the credential store is
	// being read at startup. It is left exactly once per process lifetime.
	StatusUnknown Status = iota
	StatusSignedOut
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusSignedIn:
		return "signedIn"
	case StatusSignedOut:
		return "signedOut"
	default:
		return "unknown"
	}
}
