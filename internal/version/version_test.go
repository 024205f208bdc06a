package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "gitprompt "+Version) {
		t.Errorf("Info() = %q, want prefix %q", info, "gitprompt "+Version)
	}
	if !strings.Contains(info, "commit: "+Commit) {
		t.Errorf("Info() = %q, missing commit", info)
	}
}
