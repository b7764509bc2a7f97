package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	if Info() != Version {
		t.Errorf("Expected Info() to return %s, got %s", Version, Info())
	}

	full := FullInfo()
	if !strings.HasPrefix(full, "idlocator "+Version) {
		t.Errorf("FullInfo should start with the version, got %s", full)
	}
	if !strings.Contains(full, "built: "+BuildDate) {
		t.Errorf("FullInfo should contain the build date, got %s", full)
	}
}
