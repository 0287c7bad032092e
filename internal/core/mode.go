// Package core is the orchestration layer.  It drives one DMconnect
// session from settings to teardown and provides a builder that wires
// the right transport for a given configuration.
//
// Architecture layers (bottom → top):
//
//	transport  →  dmconn  →  session  →  core  →  cmd (CLI)
package core

import "context"

// Mode represents a complete run of the program.  It owns the full
// lifecycle from connection establishment to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
