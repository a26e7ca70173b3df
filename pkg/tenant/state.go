package tenant

// State is the per-request tenant resolution outcome.
// A request moves from StateUnresolved to exactly one other state, once.
type State uint8

const (
	StateUnresolved State = iota
	StateAuthBypass
	StateSubdomain
	StateUserDefault
	StateNone
)

func (s State) String() string {
	switch s {
	case StateAuthBypass:
		return "auth_bypass"
	case StateSubdomain:
		return "subdomain"
	case StateUserDefault:
		return "user_default"
	case StateNone:
		return "none"
	default:
		return "unresolved"
	}
}

// Resolved reports whether a tenant was picked.
func (s State) Resolved() bool {
	return s == StateSubdomain || s == StateUserDefault
}
