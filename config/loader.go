package config

// loader.go - settings loading from the INI file.
//
// A missing or unreadable file is not an error: it yields an empty
// outcome and the program later refuses to connect.  Anything that
// exists but cannot be parsed is a *ConfigError, reported through the
// logger before it is returned.

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	dmerr "dmclient/internal/errors"
	"dmclient/util"
)

// Diagnostics printed before a configuration error is returned.
const (
	msgNotFound   = "settings file not found"
	msgValueType  = "parameter value does not match its data type in the settings file"
	msgPortRange  = "port value out of allowed range (1 - 65534)"
	msgReadFailed = "error reading settings file"
)

var (
	errDuplicate      = errors.New("option declared more than once")
	errOutsideSection = errors.New("option outside of any section")
)

// loadOptions mirror what the settings file format promises: keys are
// case-insensitive, '#' and ';' inside values are literal, a trailing
// backslash does not continue the value on the next line, single and
// double quotes around a value are part of it, and repeated keys are
// kept so that they can be rejected.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
	IgnoreContinuation:         true,
	PreserveSurroundedQuote:    true,
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
}

// Load reads the settings file at path.
func Load(path string, logger *util.Logger) (Outcome, error) {
	if !isFileReadable(path) {
		logger.Verbose("settings file %s is not readable, continuing without it", path)
		return Empty(), nil
	}

	cfg, err := parse(path)
	if err != nil {
		logger.Error("%s", diagnostic(err))
		return Outcome{}, err
	}

	out := Classify(cfg)
	logger.Debug("settings loaded from %s: %s, %d message(s)",
		path, out.Kind(), len(cfg.Messages))
	return out, nil
}

// isFileReadable reports whether path names a regular file that can be
// opened for reading.
func isFileReadable(path string) bool {
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// diagnostic renders the operator-facing line for a load failure.
func diagnostic(err error) string {
	var ce *dmerr.ConfigError
	if !dmerr.As(err, &ce) {
		return msgReadFailed + ": " + err.Error()
	}
	switch ce.Kind {
	case dmerr.KindNotFound:
		return msgNotFound + ": " + ce.Path
	case dmerr.KindValue:
		return ce.Message
	default:
		return ce.Error()
	}
}

func parse(path string) (SessionConfig, error) {
	var cfg SessionConfig

	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		if dmerr.Is(err, fs.ErrNotExist) {
			return cfg, &dmerr.ConfigError{
				Kind: dmerr.KindNotFound, Path: path,
				Message: msgNotFound, Err: err,
			}
		}
		return cfg, readError(path, err)
	}

	if keys := f.Section(ini.DefaultSection).Keys(); len(keys) > 0 {
		return cfg, &dmerr.ConfigError{
			Kind: dmerr.KindRead, Path: path, Field: keys[0].Name(),
			Message: msgReadFailed, Err: errOutsideSection,
			Hint: "put every option under a [section] header",
		}
	}

	if sec, err := f.GetSection(SectionConnection); err == nil {
		if err := parseConnection(path, sec, &cfg); err != nil {
			return cfg, err
		}
	}
	if sec, err := f.GetSection(SectionMessages); err == nil {
		msgs, err := parseMessages(path, sec)
		if err != nil {
			return cfg, err
		}
		cfg.Messages = msgs
	}
	if sec, err := f.GetSection(SectionTunnel); err == nil {
		tun, err := parseTunnel(path, sec)
		if err != nil {
			return cfg, err
		}
		cfg.Tunnel = tun
	}
	return cfg, nil
}

func parseConnection(path string, sec *ini.Section, cfg *SessionConfig) error {
	if err := rejectDuplicates(path, sec); err != nil {
		return err
	}

	if sec.HasKey(KeyHost) {
		cfg.Host = trimmed(sec, KeyHost)
	}
	if sec.HasKey(KeyPort) {
		raw := sec.Key(KeyPort).String()
		port, err := strconv.Atoi(raw)
		if err != nil {
			return &dmerr.ConfigError{
				Kind: dmerr.KindValue, Path: path,
				Field: SectionConnection + "." + KeyPort, Value: raw,
				Message: msgValueType, Err: err,
				Hint: "port must be an integer",
			}
		}
		if ValidatePort(port) != nil {
			return &dmerr.ConfigError{
				Kind: dmerr.KindValue, Path: path,
				Field: SectionConnection + "." + KeyPort, Value: port,
				Message: msgPortRange,
				Hint: "use a port between 1 and 65534",
			}
		}
		cfg.Port = &port
	}
	if sec.HasKey(KeyUser) {
		cfg.User = trimmed(sec, KeyUser)
	}
	if sec.HasKey(KeyPassword) {
		pw := sec.Key(KeyPassword).String()
		cfg.Password = &pw
	}
	if sec.HasKey(KeyJoinServer) {
		cfg.JoinServer = trimmed(sec, KeyJoinServer)
	}
	return nil
}

// parseMessages collects the non-empty values of sec in the order the
// keys appear in the file.  Key names carry no meaning.
func parseMessages(path string, sec *ini.Section) ([]string, error) {
	if err := rejectDuplicates(path, sec); err != nil {
		return nil, err
	}
	var msgs []string
	for _, k := range sec.Keys() {
		if v := k.String(); v != "" {
			msgs = append(msgs, v)
		}
	}
	return msgs, nil
}

func parseTunnel(path string, sec *ini.Section) (*TunnelConfig, error) {
	if err := rejectDuplicates(path, sec); err != nil {
		return nil, err
	}
	if !sec.HasKey(KeyHost) {
		return nil, nil
	}

	spec := strings.TrimSpace(sec.Key(KeyHost).String())
	user, host, port, err := ParseTunnelSpec(spec)
	if err != nil {
		return nil, &dmerr.ConfigError{
			Kind: dmerr.KindValue, Path: path,
			Field: SectionTunnel + "." + KeyHost, Value: spec,
			Message: msgValueType, Err: err,
			Hint: "expected [user@]host[:port]",
		}
	}

	tun := &TunnelConfig{
		User:       user,
		Host:       host,
		Port:       port,
		KeyPath:    strings.TrimSpace(sec.Key(KeyTunnelKey).String()),
		KnownHosts: strings.TrimSpace(sec.Key(KeyTunnelKnownHosts).String()),
	}
	for _, b := range []struct {
		key string
		dst *bool
	}{
		{KeyTunnelAgent, &tun.UseAgent},
		{KeyTunnelPrompt, &tun.PromptPassword},
		{KeyTunnelStrict, &tun.StrictHostKey},
	} {
		if !sec.HasKey(b.key) {
			continue
		}
		v, err := sec.Key(b.key).Bool()
		if err != nil {
			return nil, &dmerr.ConfigError{
				Kind: dmerr.KindValue, Path: path,
				Field: SectionTunnel + "." + b.key, Value: sec.Key(b.key).String(),
				Message: msgValueType, Err: err,
				Hint: "use true or false",
			}
		}
		*b.dst = v
	}
	return tun, nil
}

// rejectDuplicates fails when a key is declared more than once in sec.
func rejectDuplicates(path string, sec *ini.Section) error {
	for _, k := range sec.Keys() {
		if len(k.ValueWithShadows()) > 1 {
			return &dmerr.ConfigError{
				Kind: dmerr.KindRead, Path: path,
				Field:   sec.Name() + "." + k.Name(),
				Message: msgReadFailed, Err: errDuplicate,
			}
		}
	}
	return nil
}

func readError(path string, err error) error {
	return &dmerr.ConfigError{
		Kind: dmerr.KindRead, Path: path,
		Message: msgReadFailed, Err: err,
	}
}

func trimmed(sec *ini.Section, key string) *string {
	v := strings.TrimSpace(sec.Key(key).String())
	return &v
}
