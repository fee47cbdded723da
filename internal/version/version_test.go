package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.4.0"
	if Short() != "1.4.0" {
		t.Errorf("Short() = %q", Short())
	}
	if info := Info(); !strings.HasPrefix(info, "relay 1.4.0 (commit ") {
		t.Errorf("Info() = %q", info)
	}
}
