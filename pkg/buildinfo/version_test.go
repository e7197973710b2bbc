package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "abc123"
	if got := UserAgent(); got != "archlens/v1.2.3 (+abc123)" {
		t.Errorf("UserAgent() = %q", got)
	}
	if !strings.Contains(Template(), "v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}
