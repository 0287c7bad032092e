// Package dmconn speaks the DMconnect text-line protocol.
//
// Every frame is one line terminated by "\n" (a trailing "\r" from the
// server is tolerated).  After the TCP connection is up the client
// logs in and joins a server, then anything the server pushes is
// collected line by line into a buffer owned by the client.
package dmconn

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	dmerr "dmclient/internal/errors"
	"dmclient/internal/metrics"
	"dmclient/internal/session"
	"dmclient/internal/transport"
	"dmclient/util"
)

// Protocol commands sent during the handshake.
const (
	cmdLogin      = "/login"
	cmdJoinServer = "/join_server"
)

// maxLineSize caps a single inbound line.
const maxLineSize = 64 * 1024

// Connector opens DMconnect sessions over a transport.Dialer.
type Connector struct {
	Dialer  transport.Dialer
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// Connect dials the server and performs the login handshake.  A server
// that cannot be reached or that drops the handshake yields a Client
// without a live handle; only a cancelled context is returned as an
// error.
func (c *Connector) Connect(ctx context.Context, p session.Params) (session.Session, error) {
	addr := util.FormatAddr(p.Host, p.Port)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := c.Dialer.Dial(ctx, "tcp", addr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.Logger.Warn("cannot reach %s: %v", addr, err)
		c.Metrics.RecordError(err.Error())
		return &Client{addr: addr}, nil
	}
	c.Metrics.ConnectionOpened()
	c.Logger.Verbose("connected to %s", conn.RemoteAddr())

	cl := newClient(conn, addr, c.Logger, c.Metrics)
	if err := cl.login(p); err != nil {
		c.Logger.Warn("handshake with %s failed: %v", addr, err)
		c.Metrics.RecordError(err.Error())
		cl.Close() //nolint:errcheck
		return &Client{addr: addr}, nil
	}
	return cl, nil
}

// Close releases the underlying dialer.
func (c *Connector) Close() error {
	return c.Dialer.Close()
}

// Client is one DMconnect session.
type Client struct {
	addr    string
	conn    net.Conn // nil when the connection never came up
	logger  *util.Logger
	metrics *metrics.Collector

	mu     sync.Mutex
	lines  []string
	closed bool

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

func newClient(conn net.Conn, addr string, logger *util.Logger, m *metrics.Collector) *Client {
	c := &Client{
		addr:    addr,
		conn:    conn,
		logger:  logger,
		metrics: m,
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Client) login(p session.Params) error {
	if err := c.writeLine(fmt.Sprintf("%s %s %s", cmdLogin, p.User, p.Password)); err != nil {
		return err
	}
	return c.writeLine(fmt.Sprintf("%s %s", cmdJoinServer, p.JoinServer))
}

// Connected reports whether the session holds a live handle.
func (c *Client) Connected() bool {
	if c.conn == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Send writes msg as one line.
func (c *Client) Send(msg string) error {
	if c.conn == nil {
		return dmerr.Wrap("write", c.addr, dmerr.ErrNotConnected)
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return dmerr.Wrap("write", c.addr, dmerr.ErrClosed)
	}
	return c.writeLine(msg)
}

func (c *Client) writeLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	n, err := io.WriteString(c.conn, line+"\n")
	if err != nil {
		c.metrics.RecordError(err.Error())
		return dmerr.Wrap("write", c.addr, err)
	}
	c.metrics.MessageSent(n)
	return nil
}

// Lines returns a copy of everything received so far.
func (c *Client) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Close shuts the connection down and waits for the reader to stop.
// Calling it more than once is safe.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		if err := c.conn.Close(); err != nil && !dmerr.Is(err, net.ErrClosed) {
			c.closeErr = dmerr.Wrap("close", c.addr, err)
		}
		<-c.done
		c.metrics.ConnectionClosed()
	})
	return c.closeErr
}

// readLoop appends every inbound line to the buffer until the
// connection ends.
func (c *Client) readLoop() {
	defer close(c.done)

	sc := bufio.NewScanner(c.conn)
	sc.Buffer(make([]byte, 4096), maxLineSize)
	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimRight(raw, "\r")
		c.metrics.LineReceived(len(raw) + 1)

		c.mu.Lock()
		c.lines = append(c.lines, line)
		c.mu.Unlock()
	}

	err := sc.Err()
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	switch {
	case err != nil && !closed:
		c.logger.Verbose("read from %s: %v", c.addr, err)
	case err == nil && !closed:
		c.logger.Verbose("server %s closed the connection", c.addr)
	}
}
