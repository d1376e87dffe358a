// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"testing"
)

func TestVersionDefined(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestProductDefined(t *testing.T) {
	if Product == "" {
		t.Error("Product should not be empty")
	}
}

func TestVersionFormat(t *testing.T) {
	// Version should typically be in format like "0.1.0" or "dev"
	if len(Version) == 0 {
		t.Error("Version string is empty")
	}

	// Just verify it's a reasonable string
	if len(Version) > 100 {
		t.Error("Version string is unreasonably long")
	}
}

func TestVersionNotPlaceholder(t *testing.T) {
	// Check for common placeholder values
	placeholders := []string{"TODO", "FIXME", "XXX", "placeholder"}

	for _, placeholder := range placeholders {
		if Version == placeholder {
			t.Errorf("Version should not be placeholder value: %s", placeholder)
		}
		if Product == placeholder {
			t.Errorf("Product should not be placeholder value: %s", placeholder)
		}
	}
}
