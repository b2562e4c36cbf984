package prompts

import "testing"

func TestLoad_AllRoles(t *testing.T) {
	for _, name := range []string{"interpreter", "creator", "solver", "validator", "corrector"} {
		s, err := Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if s == "" {
			t.Fatalf("prompt %s is empty", name)
		}
	}
}

func TestLoad_Unknown(t *testing.T) {
	if _, err := Load("nonexistent"); err == nil {
		t.Fatal("expected error for unknown prompt")
	}
}
