package session

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		if len(code) != codeLen {
			t.Fatalf("GenerateCode() len = %d, want %d", len(code), codeLen)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("GenerateCode() = %q, char %q not in alphabet", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 90 {
		t.Errorf("GenerateCode() produced too many collisions: %d uniques", len(seen))
	}
}

func TestGenerateCode_validates(t *testing.T) {
	// generated codes must pass the same validation applied to custom ones
	for i := 0; i < 20; i++ {
		ns := NewSession{ClassID: "c1", Code: GenerateCode()}
		if err := ns.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
	}
}
