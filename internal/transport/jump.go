package transport

import (
	"context"
	"net"
	"os/user"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"dmclient/config"
	dmerr "dmclient/internal/errors"
	"dmclient/util"
)

// JumpDialer reaches the DMconnect server through the SSH jump host
// named in the [tunnel] settings section.  The SSH session is opened by
// the first Dial, reused by later ones and ended by Close.
type JumpDialer struct {
	cfg     config.TunnelConfig
	timeout time.Duration
	logger  *util.Logger

	mu     sync.Mutex
	client *ssh.Client
}

// NewJumpDialer returns a dialer for the given jump host.  Nothing is
// dialled until the first call to Dial.
func NewJumpDialer(cfg config.TunnelConfig, timeout time.Duration, logger *util.Logger) *JumpDialer {
	if cfg.Port == 0 {
		cfg.Port = config.DefaultSSHPort
	}
	if cfg.User == "" {
		if u, err := user.Current(); err == nil {
			cfg.User = u.Username
		}
	}
	return &JumpDialer{cfg: cfg, timeout: timeout, logger: logger}
}

// Dial opens a forwarded connection from the jump host to address.
func (d *JumpDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	client, err := d.open(ctx, address)
	if err != nil {
		return nil, err
	}
	conn, err := client.DialContext(ctx, network, address)
	if err != nil {
		return nil, dmerr.Wrap("forward", address, err)
	}
	return conn, nil
}

// open returns the live SSH client, connecting first if needed.  The
// gateway is dialled before any credential is gathered so that an
// unreachable host never triggers a prompt.
func (d *JumpDialer) open(ctx context.Context, target string) (*ssh.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		return d.client, nil
	}

	gw := util.FormatAddr(d.cfg.Host, d.cfg.Port)
	d.logger.Verbose("opening SSH jump host %s@%s for %s", d.cfg.User, gw, target)

	raw, err := (&net.Dialer{Timeout: d.timeout}).DialContext(ctx, "tcp", gw)
	if err != nil {
		return nil, dmerr.WrapSSH("dial", d.cfg.Host, d.cfg.Port, err)
	}

	auth, err := authMethods(d.cfg, target)
	if err != nil {
		raw.Close()
		return nil, dmerr.WrapSSH("auth", d.cfg.Host, d.cfg.Port, err)
	}
	hostKey, err := hostKeyCallback(d.cfg)
	if err != nil {
		raw.Close()
		return nil, dmerr.WrapSSH("hostkey", d.cfg.Host, d.cfg.Port, err)
	}

	conn, chans, reqs, err := ssh.NewClientConn(raw, gw, &ssh.ClientConfig{
		User:            d.cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         d.timeout,
	})
	if err != nil {
		raw.Close()
		return nil, dmerr.WrapSSH("handshake", d.cfg.Host, d.cfg.Port, err)
	}

	d.client = ssh.NewClient(conn, chans, reqs)
	d.logger.Verbose("SSH jump host %s ready", gw)
	return d.client, nil
}

// Close ends the SSH session, if one was opened.
func (d *JumpDialer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}
	err := d.client.Close()
	d.client = nil
	return err
}
