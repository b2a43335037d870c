package prompt

import (
	"strings"
	"testing"
)

func TestWrapIdentity(t *testing.T) {
	answer := "## Heading\n- point one\n- point two"
	for _, target := range []string{"", "none", "NONE", "None", "  none  "} {
		if got := Wrap(answer, target); got != answer {
			t.Fatalf("Wrap(%q) must return the answer unchanged, got %q", target, got)
		}
	}
}

func TestWrapAppendsDirective(t *testing.T) {
	answer := "## Heading\nsome generated text"
	got := Wrap(answer, "French")

	if !strings.HasPrefix(got, answer) {
		t.Fatal("wrapped answer must start with the original answer")
	}
	if !strings.Contains(got, "French") {
		t.Fatal("directive must name the target language")
	}
	if !strings.Contains(got, "Translate the entire answer above") {
		t.Fatal("directive text missing")
	}
	// The directive is advisory text, not a translated answer.
	if len(got) <= len(answer) {
		t.Fatal("directive must be appended, not substituted")
	}
}
