// Package session defines the contract between the run orchestration
// in internal/core and whatever owns the actual DMconnect connection.
//
// The orchestration layer never touches sockets: it asks a Connector
// for a Session, sends lines through it and reads back a snapshot of
// what the server pushed.  internal/dmconn provides the production
// implementation; tests substitute fakes.
package session

import "context"

// Params are the connection parameters of one DMconnect session.
type Params struct {
	Host       string
	Port       int
	User       string
	Password   string
	JoinServer string
}

// Connector opens sessions.
type Connector interface {
	// Connect attempts to establish a session.  Failing to reach the
	// server is not an error: the returned Session then reports
	// Connected() == false.  A non-nil error means the attempt itself
	// could not be made (cancelled context, unusable parameters).
	Connect(ctx context.Context, p Params) (Session, error)
}

// Session is a live (or failed) connection to a DMconnect server.
type Session interface {
	// Connected reports whether the session holds a live handle.
	Connected() bool

	// Send transmits one line to the server.
	Send(msg string) error

	// Lines returns a snapshot of the lines received so far, in
	// arrival order.  The buffer behind it is owned by the Session
	// and keeps growing while the connection is open.
	Lines() []string

	// Close terminates the session.
	Close() error
}

// Result summarises one run.  It is discarded after final reporting.
type Result struct {
	Connected bool
	Sent      int
	Received  []string
}
