package errors

import (
	"fmt"
	"io"
	"strconv"
	"testing"
)

func TestTransportError_Format(t *testing.T) {
	err := Wrap("write", "db.example.com:4050", io.ErrClosedPipe)
	want := "write db.example.com:4050: io: read/write on closed pipe"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	err := &TransportError{Op: "write", Addr: "x", Err: io.EOF}
	if !Is(err, io.EOF) {
		t.Error("should unwrap to io.EOF")
	}
}

func TestSSHError_Format(t *testing.T) {
	err := WrapSSH("handshake", "bastion.example.com", 22, fmt.Errorf("connection refused"))
	want := "ssh handshake bastion.example.com:22: connection refused"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSSHError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("auth fail")
	err := WrapSSH("auth", "host", 22, inner)
	if !Is(err, inner) {
		t.Error("should unwrap to inner error")
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "field value and hint",
			err: ConfigError{
				Kind:    KindValue,
				Path:    "settings.ini",
				Field:   "connection.port",
				Value:   99999,
				Message: "port value out of allowed range (1 - 65534)",
				Hint:    "use a port between 1 and 65534",
			},
			want: "config settings.ini: connection.port=99999: port value out of allowed range (1 - 65534)\n  hint: use a port between 1 and 65534",
		},
		{
			name: "cause without field",
			err: ConfigError{
				Kind:    KindRead,
				Path:    "settings.ini",
				Message: "error reading settings file",
				Err:     fmt.Errorf("unclosed section"),
			},
			want: "config settings.ini: error reading settings file: unclosed section",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	_, parseErr := strconv.Atoi("x")
	err := &ConfigError{Kind: KindValue, Message: "bad", Err: parseErr}
	if !Is(err, strconv.ErrSyntax) {
		t.Error("should unwrap to strconv.ErrSyntax")
	}
}

func TestConfigKind_String(t *testing.T) {
	kinds := map[ConfigKind]string{
		KindNotFound:  "not found",
		KindValue:     "invalid value",
		KindRead:      "read failure",
		ConfigKind(0): "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{ErrNotConnected, ErrClosed}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
