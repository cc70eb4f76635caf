package service

import "testing"

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateSessionToken("sess-123")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	sessionID, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if sessionID != "sess-123" {
		t.Fatalf("session id = %q", sessionID)
	}
}

func TestParseSessionToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseSessionToken("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestParseSessionToken_WrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-one")
	InitJWT()
	token, err := GenerateSessionToken("sess-123")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "key-two")
	InitJWT()
	if _, err := ParseSessionToken(token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}
