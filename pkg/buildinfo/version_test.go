package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} v1.2.3 (texture map loader)\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Template() = %q, want commit line", got)
	}
}
