package config

import (
	"testing"
)

// ── ParseTunnelSpec ──────────────────────────────────────────────────

func TestParseTunnelSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUser string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"full", "admin@bastion.example.com:2222", "admin", "bastion.example.com", 2222, false},
		{"no port", "root@gateway", "root", "gateway", 22, false},
		{"no user", "jump-host:2200", "", "jump-host", 2200, false},
		{"host only", "gateway.local", "", "gateway.local", 22, false},
		{"bad port", "user@host:999999", "", "", 0, true},
		{"port zero", "host:0", "", "", 0, true},
		{"empty", "", "", "", 0, true},
		{"colon only", ":", "", "", 0, true},
		{"no host before colon", ":22", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, host, port, err := ParseTunnelSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if user != tt.wantUser || host != tt.wantHost || port != tt.wantPort {
				t.Errorf("got (%q, %q, %d), want (%q, %q, %d)",
					user, host, port, tt.wantUser, tt.wantHost, tt.wantPort)
			}
		})
	}
}

// ── ValidatePort ─────────────────────────────────────────────────────

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    int
		wantErr bool
	}{
		{1, false},
		{4050, false},
		{65534, false},
		{0, true},
		{65535, true},
		{-20, true},
	}
	for _, tt := range tests {
		if err := ValidatePort(tt.port); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePort(%d) error = %v, wantErr = %v", tt.port, err, tt.wantErr)
		}
	}
}

// ── Outcome ──────────────────────────────────────────────────────────

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestClassify(t *testing.T) {
	full := SessionConfig{
		Host: strp("h"), Port: intp(1), User: strp("u"),
		Password: strp(""), JoinServer: strp("j"),
	}

	tests := []struct {
		name string
		edit func(c *SessionConfig)
		want OutcomeKind
	}{
		{"complete", func(c *SessionConfig) {}, OutcomeComplete},
		{"complete without messages", func(c *SessionConfig) { c.Messages = nil }, OutcomeComplete},
		{"no host", func(c *SessionConfig) { c.Host = nil }, OutcomeIncomplete},
		{"no port", func(c *SessionConfig) { c.Port = nil }, OutcomeIncomplete},
		{"no user", func(c *SessionConfig) { c.User = nil }, OutcomeIncomplete},
		{"no password", func(c *SessionConfig) { c.Password = nil }, OutcomeIncomplete},
		{"no join server", func(c *SessionConfig) { c.JoinServer = nil }, OutcomeIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := full
			tt.edit(&c)
			if got := Classify(c).Kind(); got != tt.want {
				t.Errorf("Kind() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOutcome_CompleteCopiesMessages(t *testing.T) {
	cfg := SessionConfig{
		Host: strp("h"), Port: intp(1), User: strp("u"),
		Password: strp("p"), JoinServer: strp("j"),
		Messages: []string{"a", "b"},
	}
	out := Classify(cfg)

	c, ok := out.Complete()
	if !ok {
		t.Fatal("expected complete outcome")
	}
	c.Messages[0] = "changed"

	if got := out.Config().Messages[0]; got != "a" {
		t.Errorf("outcome messages mutated through Complete: %q", got)
	}
}

func TestOutcomeKind_String(t *testing.T) {
	for k, want := range map[OutcomeKind]string{
		OutcomeEmpty:      "empty",
		OutcomeIncomplete: "incomplete",
		OutcomeComplete:   "complete",
		OutcomeKind(9):    "unknown",
	} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(k), got, want)
		}
	}
}
