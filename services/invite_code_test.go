package services

import (
	"strings"
	"testing"

	"github.com/yalcinkaya/fitcircle/models"
)

func TestGenerateInviteCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code, err := generateInviteCode()
		if err != nil {
			t.Fatalf("generateInviteCode failed: %v", err)
		}
		if len(code) != models.InviteCodeLength {
			t.Fatalf("expected %d chars, got %q", models.InviteCodeLength, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(inviteCodeCharset, ch) {
				t.Fatalf("code %q contains character outside charset", code)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code %q within 500 draws", code)
		}
		seen[code] = true
	}
}
