package security

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "abcdefghijklmnopqrstuvwxyz123456"

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewSessionTokenManager("fraudguard", testSecret, time.Hour)
	raw, exp, err := m.Sign("sess-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	id, gotExp, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "sess-1" {
		t.Fatalf("unexpected session id %q", id)
	}
	if !gotExp.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("unexpected expiry got=%v want=%v", gotExp, exp)
	}
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	m := NewSessionTokenManager("fraudguard", testSecret, time.Hour)
	raw, _, err := m.Sign("sess-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parts := strings.Split(raw, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, _, err := m.Parse(tampered); !errors.Is(err, ErrInvalidSessionToken) {
		t.Fatalf("expected ErrInvalidSessionToken, got %v", err)
	}

	other := NewSessionTokenManager("fraudguard", "zyxwvutsrqponmlkjihgfedcba654321", time.Hour)
	if _, _, err := other.Parse(raw); !errors.Is(err, ErrInvalidSessionToken) {
		t.Fatalf("expected foreign-key token rejected, got %v", err)
	}
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	m := NewSessionTokenManager("fraudguard", testSecret, time.Minute)
	base := time.Now()
	m.now = func() time.Time { return base.Add(-2 * time.Hour) }
	raw, _, err := m.Sign("sess-old")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	m.now = func() time.Time { return base }
	if _, _, err := m.Parse(raw); !errors.Is(err, ErrInvalidSessionToken) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
}

func TestSessionTokenRejectsWrongIssuer(t *testing.T) {
	raw, _, err := NewSessionTokenManager("someone-else", testSecret, time.Hour).Sign("sess-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := NewSessionTokenManager("fraudguard", testSecret, time.Hour).Parse(raw); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}
