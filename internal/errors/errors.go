// Package errors provides domain-specific error types for dmclient.
//
// These types carry structured context (operation, address, offending
// setting) so the CLI can print a diagnostic that tells the operator
// what failed and what to fix.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNotConnected = errors.New("not connected")
	ErrClosed       = errors.New("session is closed")
)

// ── Configuration errors ─────────────────────────────────────────────

// ConfigKind classifies a configuration failure.  Each kind maps to a
// different corrective action for the operator.
type ConfigKind int

const (
	// KindNotFound: the settings file vanished between the readability
	// check and the actual read.
	KindNotFound ConfigKind = iota + 1
	// KindValue: a value is present but has the wrong type or range.
	KindValue
	// KindRead: any other read or parse failure.
	KindRead
)

func (k ConfigKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValue:
		return "invalid value"
	case KindRead:
		return "read failure"
	default:
		return "unknown"
	}
}

// ConfigError represents a structurally malformed settings file.
type ConfigError struct {
	Kind    ConfigKind
	Path    string      // settings file
	Field   string      // "section.key" (empty when not tied to a key)
	Value   interface{} // the invalid value (nil if not applicable)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
	Err     error       // underlying cause (optional)
}

func (e *ConfigError) Error() string {
	msg := "config"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
		if e.Value != nil {
			msg += fmt.Sprintf("=%v", e.Value)
		}
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ── Transport errors ─────────────────────────────────────────────────

// TransportError represents a failure in a network operation on an
// established or establishing session.
type TransportError struct {
	Op   string // operation: "dial", "login", "write", "close"
	Addr string // network address involved
	Err  error  // underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SSHError represents an SSH-specific failure with host context.
type SSHError struct {
	Op   string // "handshake", "auth", "hostkey", "dial"
	Host string
	Port int
	Err  error
}

func (e *SSHError) Error() string {
	return fmt.Sprintf("ssh %s %s:%d: %v", e.Op, e.Host, e.Port, e.Err)
}

func (e *SSHError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a TransportError.
func Wrap(op, addr string, err error) *TransportError {
	return &TransportError{Op: op, Addr: addr, Err: err}
}

// WrapSSH creates an SSHError.
func WrapSSH(op, host string, port int, err error) *SSHError {
	return &SSHError{Op: op, Host: host, Port: port, Err: err}
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These let callers match errors without a second errors import.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }
