// Package types holds the model entry schema shared by the registry, the
// HTTP API and the CLI. Field tags cover every supported file format.
package types

// Role tags a meta-template turn.
type Role string

const (
	RoleHuman Role = "HUMAN"
	RoleBot   Role = "BOT"
)

// Side is a tokenizer padding or truncation side.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Valid reports whether s is one of the recognized sides. The empty side
// leaves the choice to the harness.
func (s Side) Valid() bool {
	return s == "" || s == SideLeft || s == SideRight
}
