package theme

import (
	"strings"
	"testing"
)

func TestCriticalKeepsTitleAndMessage(t *testing.T) {
	t.Parallel()
	box := Critical("Error", "Login failed, invalid email or password.")
	for _, want := range []string{"Error", "Login failed, invalid email or password."} {
		if !strings.Contains(box, want) {
			t.Fatalf("critical box lost %q:\n%s", want, box)
		}
	}
}
