package layout

import (
	"fmt"

	"github.com/matzehuels/exprflow/pkg/depgraph"
)

// Role is the visual category of a node.
type Role int

const (
	Intermediate Role = iota
	Terminal
	Final
)

var roleNames = [...]string{
	Intermediate: "intermediate",
	Terminal:     "terminal",
	Final:        "final",
}

func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(roleNames) {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(roleNames[r]), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// ParseRole returns the role named s.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Classify returns the role of key in g. A key that is both final and
// terminal is final.
func Classify(g *depgraph.Graph, key string) Role {
	if g.Finals.Contains(key) {
		return Final
	}
	if c, ok := g.Table.Get(key); ok && c.IsTerminal() {
		return Terminal
	}
	return Intermediate
}
