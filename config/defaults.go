package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across the CLI, the settings loader and the session layer.

const (
	// DefaultSettingsFile is the settings file read when --config is
	// not given.
	DefaultSettingsFile = "settings.ini"

	// MinPort and MaxPort bound the DMconnect server port.  65535 is
	// deliberately excluded.
	MinPort = 1
	MaxPort = 65534

	// DefaultSSHPort is the standard SSH port.
	DefaultSSHPort = 22

	// DefaultConnTimeout is the TCP/SSH connection timeout.
	DefaultConnTimeout = 30 * time.Second
)

// Settings file layout.
const (
	SectionConnection = "connection"
	SectionMessages   = "messages"
	SectionTunnel     = "tunnel"

	KeyHost       = "host"
	KeyPort       = "port"
	KeyUser       = "user"
	KeyPassword   = "password"
	KeyJoinServer = "join_server"

	KeyTunnelKey        = "key"
	KeyTunnelAgent      = "agent"
	KeyTunnelPrompt     = "password_prompt"
	KeyTunnelStrict     = "strict_host_key"
	KeyTunnelKnownHosts = "known_hosts"
)
