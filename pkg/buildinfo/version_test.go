package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	info := Get()
	if info.Version != "v1.2.3" || info.Commit != Commit || info.Date != Date {
		t.Errorf("Get() = %+v", info)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q", String())
	}
}
