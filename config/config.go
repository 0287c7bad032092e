// Package config defines the settings of a dmclient run and loads them
// from an INI file.
//
// A run is driven by an [Outcome]: the settings file was absent
// ([OutcomeEmpty]), parsed but missing connection parameters
// ([OutcomeIncomplete]), or parsed with every connection parameter
// present ([OutcomeComplete]).  Only a complete outcome yields the
// [Complete] value needed to open a session.
package config

import (
	"fmt"
	"regexp"
	"strconv"

	"dmclient/util"
)

// SessionConfig is the result of reading the settings file.  Every
// connection field is optional; nil means "not configured".  A
// SessionConfig is built once by [Load] and never mutated afterwards.
type SessionConfig struct {
	Host       *string
	Port       *int
	User       *string
	Password   *string // verbatim, may be empty or padded with blanks
	JoinServer *string

	// Messages are the scripted outbound lines in declaration order.
	// Empty entries are dropped during loading.
	Messages []string

	// Tunnel is set when the [tunnel] section names an SSH jump host.
	Tunnel *TunnelConfig
}

// TunnelConfig describes an optional SSH jump host through which the
// DMconnect server is reached.
type TunnelConfig struct {
	User           string
	Host           string
	Port           int
	KeyPath        string
	UseAgent       bool
	PromptPassword bool
	StrictHostKey  bool
	KnownHosts     string
}

// Complete holds the connection parameters of a configuration in which
// all five of them are present.
type Complete struct {
	Host       string
	Port       int
	User       string
	Password   string
	JoinServer string
	Messages   []string
	Tunnel     *TunnelConfig
}

// Addr returns the DMconnect server address as host:port.
func (c Complete) Addr() string {
	return util.FormatAddr(c.Host, c.Port)
}

// ── Outcome ──────────────────────────────────────────────────────────

// OutcomeKind discriminates the variants of [Outcome].
type OutcomeKind int

const (
	// OutcomeEmpty: no readable settings file.
	OutcomeEmpty OutcomeKind = iota
	// OutcomeIncomplete: settings parsed, a connection field is missing.
	OutcomeIncomplete
	// OutcomeComplete: every connection field is present.
	OutcomeComplete
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEmpty:
		return "empty"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome is the successful result of loading settings.
type Outcome struct {
	kind   OutcomeKind
	config SessionConfig
}

// Empty returns the outcome for a missing or unreadable settings file.
func Empty() Outcome {
	return Outcome{kind: OutcomeEmpty}
}

// Classify wraps a parsed configuration, deciding whether it is
// complete.
func Classify(cfg SessionConfig) Outcome {
	kind := OutcomeIncomplete
	if cfg.Host != nil && cfg.Port != nil && cfg.User != nil &&
		cfg.Password != nil && cfg.JoinServer != nil {
		kind = OutcomeComplete
	}
	return Outcome{kind: kind, config: cfg}
}

// Kind reports which variant o is.
func (o Outcome) Kind() OutcomeKind { return o.kind }

// Config returns the parsed configuration.  It is the zero value for
// an empty outcome.
func (o Outcome) Config() SessionConfig { return o.config }

// Complete returns the connection parameters when o is complete.
func (o Outcome) Complete() (Complete, bool) {
	if o.kind != OutcomeComplete {
		return Complete{}, false
	}
	c := o.config
	msgs := make([]string, len(c.Messages))
	copy(msgs, c.Messages)
	return Complete{
		Host:       *c.Host,
		Port:       *c.Port,
		User:       *c.User,
		Password:   *c.Password,
		JoinServer: *c.JoinServer,
		Messages:   msgs,
		Tunnel:     c.Tunnel,
	}, true
}

// Missing lists the connection keys that are not configured.
func (o Outcome) Missing() []string {
	c := o.config
	var out []string
	if c.Host == nil {
		out = append(out, KeyHost)
	}
	if c.Port == nil {
		out = append(out, KeyPort)
	}
	if c.User == nil {
		out = append(out, KeyUser)
	}
	if c.Password == nil {
		out = append(out, KeyPassword)
	}
	if c.JoinServer == nil {
		out = append(out, KeyJoinServer)
	}
	return out
}

// ── Port helpers ─────────────────────────────────────────────────────

// ValidatePort checks that port lies within [MinPort, MaxPort].
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("port %d out of range %d-%d", port, MinPort, MaxPort)
	}
	return nil
}

// ── Tunnel-spec parser ───────────────────────────────────────────────

// tunnelRe matches [user@]host[:port].
var tunnelRe = regexp.MustCompile(`^(?:([^@]+)@)?([^:]+)(?::(\d+))?$`)

// ParseTunnelSpec extracts user, host, and port from a string such as
// "admin@bastion.example.com:2222".  Port defaults to 22.
func ParseTunnelSpec(spec string) (user, host string, port int, err error) {
	m := tunnelRe.FindStringSubmatch(spec)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid tunnel spec %q – expected [user@]host[:port]", spec)
	}
	user = m[1]
	host = m[2]
	port = DefaultSSHPort
	if m[3] != "" {
		port, err = strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return "", "", 0, fmt.Errorf("invalid tunnel port %q", m[3])
		}
	}
	if host == "" {
		return "", "", 0, fmt.Errorf("tunnel host is required")
	}
	return user, host, port, nil
}
