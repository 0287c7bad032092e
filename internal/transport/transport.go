// Package transport provides abstractions for network connection
// establishment.  Transports handle how bytes reach the DMconnect
// server (plain TCP, or TCP forwarded through an SSH jump host),
// independent of the line protocol spoken over the connection.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound network connections.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer
	// (e.g. an SSH session).  Stateless dialers return nil.
	Close() error
}
