package templates

import (
	"strings"
	"testing"
)

func TestRenderPasswordReset(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	html, text, err := renderer.Render("password_reset", PasswordResetData{
		UserName:  "Alice",
		ResetURL:  "https://app.example.com/reset?token=abc123",
		ExpiresIn: "1 hour",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Alice", "https://app.example.com/reset?token=abc123", "1 hour"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestRenderEmailVerification(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	html, text, err := renderer.Render("email_verification", EmailVerificationData{
		UserName:  "Bob",
		VerifyURL: "https://app.example.com/verify?token=xyz789",
		ExpiresIn: "24 hours",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "https://app.example.com/verify?token=xyz789") {
		t.Error("HTML body missing the verification link")
	}
	if !strings.Contains(text, "Bob") {
		t.Error("text body missing the user name")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	if _, _, err := renderer.Render("does_not_exist", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}
