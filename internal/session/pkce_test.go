package session

import "testing"

func TestChallengeS256(t *testing.T) {
	t.Run("Should match the RFC 7636 appendix vector", func(t *testing.T) {
		// Verifier and challenge from RFC 7636 appendix B.
		verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
		want := "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"

		if got := ChallengeS256(verifier); got != want {
			t.Errorf("Expected challenge %s, got %s", want, got)
		}
	})

	t.Run("Should be deterministic for a fixed verifier", func(t *testing.T) {
		verifier := "fixed-verifier-value-for-reproducibility-check"
		if ChallengeS256(verifier) != ChallengeS256(verifier) {
			t.Error("Expected identical challenges for the same verifier")
		}
	})
}

func TestNewVerifier(t *testing.T) {
	t.Run("Should generate 43-character verifiers", func(t *testing.T) {
		v, err := NewVerifier()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(v) != 43 {
			t.Errorf("Expected 43 characters, got %d", len(v))
		}
	})

	t.Run("Should not repeat", func(t *testing.T) {
		a, err := NewVerifier()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		b, err := NewVerifier()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if a == b {
			t.Error("Expected distinct verifiers")
		}
	})
}
