package auth

import "testing"

func TestParseCredentials(t *testing.T) {
	creds := ParseCredentials("alice:secret, bob:hunter2,,broken")
	if len(creds) != 2 {
		t.Fatalf("expected 2 credential pairs, got %d", len(creds))
	}
	if creds["alice"] != "secret" || creds["bob"] != "hunter2" {
		t.Fatalf("unexpected credentials: %v", creds)
	}
}

func TestSessionLifecycle(t *testing.T) {
	m := NewManager(Credentials{"alice": "secret"})

	// Anonymous: no session exists yet.
	if _, ok := m.Lookup("anything"); ok {
		t.Fatalf("lookup before login must fail")
	}

	s, err := m.Login("alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Token == "" || s.Username != "alice" {
		t.Fatalf("unexpected session: %+v", s)
	}

	got, ok := m.Lookup(s.Token)
	if !ok || got.Username != "alice" {
		t.Fatalf("authenticated lookup failed: %+v", got)
	}

	m.Logout(s.Token)
	if _, ok := m.Lookup(s.Token); ok {
		t.Fatalf("lookup after logout must fail")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := NewManager(Credentials{"alice": "secret"})
	if _, err := m.Login("alice", "wrong"); err == nil {
		t.Fatalf("wrong password must be rejected")
	}
	if _, err := m.Login("nobody", "secret"); err == nil {
		t.Fatalf("unknown user must be rejected")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager(Credentials{"alice": "secret"})
	first, _ := m.Login("alice", "secret")
	second, _ := m.Login("alice", "secret")
	if first.Token == second.Token {
		t.Fatalf("each login must issue a distinct token")
	}
	m.Logout(first.Token)
	if _, ok := m.Lookup(second.Token); !ok {
		t.Fatalf("logging out one session must not end the other")
	}
}
