package rbac

// MaxInheritanceDepth bounds role inheritance chains.
const MaxInheritanceDepth = 10

// Role is a named set of permissions with optional inheritance.
// Permissions are dot-separated ("products.update") and may end in a
// wildcard ("products.*"); "*" grants everything.
type Role struct {
	Permissions []string `yaml:"permissions" json:"permissions"`
	Inherits    []string `yaml:"inherits" json:"inherits,omitempty"`
}

// Decision is a policy verdict.
type Decision uint8

const (
	// Abstain leaves the decision to the next step.
	Abstain Decision = iota
	Allow
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "abstain"
	}
}

// Subject is the identity an ability is checked for.
// Implementations must be safe to call on a nil receiver.
type Subject interface {
	Authenticated() bool
	RoleNames() []string
}
