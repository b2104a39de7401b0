package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossflow/pkg/crossflow"
)

const sampleJSON = `{
  "n": {"left": 1, "front": 2, "right": 1, "turn": 0},
  "s": {"left": 0, "front": 3, "right": 0, "turn": 1}
}`

// runCLI executes the root command with a private config path and cache
// directory and returns what the command wrote to its output.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--config", filepath.Join(dir, "crossflow.yaml")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	want := []string{"template", "option", "export", "summary", "explore", "serve", "cache", "config", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestOptionCommandStdout(t *testing.T) {
	dir := t.TempDir()
	counts := writeFile(t, filepath.Join(dir, "counts.json"), sampleJSON)

	out, err := runCLI(t, dir, "option", counts)
	if err != nil {
		t.Fatalf("option: %v", err)
	}

	var opt crossflow.Option
	if err := json.Unmarshal([]byte(out), &opt); err != nil {
		t.Fatalf("stdout is not an option: %v\n%s", err, out)
	}
	if n := len(opt.Graph().Data); n != crossflow.NodeCount {
		t.Errorf("nodes = %d, want %d", n, crossflow.NodeCount)
	}
}

func TestOptionCommandStyleLayers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "crossflow.yaml"), "style:\n  max_width: 14\n")
	counts := writeFile(t, filepath.Join(dir, "counts.toml"), `
[n]
left = 1
front = 2
right = 1

[s]
front = 3
turn = 1

[config]
height = 12
`)
	output := filepath.Join(dir, "option.json")

	if _, err := runCLI(t, dir, "option", counts, "-o", output, "--box-size", "200", "--gap", "50"); err != nil {
		t.Fatalf("option: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var opt crossflow.Option
	if err := json.Unmarshal(data, &opt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	ni, ok := opt.Node("ni")
	if !ok {
		t.Fatal("ni missing")
	}
	// max_width from the app config, height from the file, box size from flags.
	if ni.SymbolSize != [2]float64{14, 12} {
		t.Errorf("ni size = %v, want [14 12]", ni.SymbolSize)
	}
	if ni.X != 75 {
		t.Errorf("ni x = %v, want 75", ni.X)
	}
}

func TestOptionCommandExplicitZeroGap(t *testing.T) {
	tests := []struct {
		name   string
		counts string
		args   []string
	}{
		{"flag", "[n]\nfront = 2\n", []string{"--gap", "0"}},
		{"document", "[n]\nfront = 2\n\n[config]\ngap = 0\n", nil},
		{"flag over document", "[n]\nfront = 2\n\n[config]\ngap = 30\n", []string{"--gap", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			counts := writeFile(t, filepath.Join(dir, "counts.toml"), tt.counts)

			out, err := runCLI(t, dir, append([]string{"option", counts}, tt.args...)...)
			if err != nil {
				t.Fatalf("option: %v", err)
			}
			var opt crossflow.Option
			if err := json.Unmarshal([]byte(out), &opt); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			ni, _ := opt.Node("ni")
			no, _ := opt.Node("no")
			if ni.X != 50 || no.X != 50 {
				t.Errorf("ni.X = %v, no.X = %v, want both 50", ni.X, no.X)
			}
		})
	}
}

func TestOptionCommandStrict(t *testing.T) {
	dir := t.TempDir()
	counts := writeFile(t, filepath.Join(dir, "counts.json"), `{"s":{"left":-1}}`)

	if _, err := runCLI(t, dir, "option", counts); err != nil {
		t.Errorf("non-strict option should accept negative counts: %v", err)
	}
	if _, err := runCLI(t, dir, "option", counts, "--strict"); err == nil {
		t.Error("strict option should reject negative counts")
	}
}

func TestOptionCommandMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "option", filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExportCommandWritesFormats(t *testing.T) {
	dir := t.TempDir()
	counts := writeFile(t, filepath.Join(dir, "counts.json"), sampleJSON)
	base := filepath.Join(dir, "out", "crossing")

	if _, err := runCLI(t, dir, "export", counts, "-f", "json,dot", "-o", base, "--dot-labels"); err != nil {
		t.Fatalf("export: %v", err)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.HasPrefix(string(dot), "digraph crossflow {") {
		t.Errorf("unexpected dot output:\n%s", dot)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	counts := writeFile(t, filepath.Join(dir, "counts.json"), sampleJSON)
	if _, err := runCLI(t, dir, "export", counts, "-f", "svg"); err == nil {
		t.Error("expected error for svg format")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, output, format string
		multi                 bool
		want                  string
	}{
		{"counts.json", "", "dot", false, "counts.dot"},
		{"counts.json", "", "json", false, "counts.option.json"},
		{"counts.toml", "", "json", true, "counts.json"},
		{"-", "", "dot", false, "crossflow.dot"},
		{"counts.json", "x.dot", "dot", false, "x.dot"},
		{"counts.json", "out/x", "dot", true, "out/x.dot"},
		{"counts.json", "out/x", "json", true, "out/x.json"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.input, tt.output, tt.format, tt.multi); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q", tt.input, tt.output, tt.format, tt.multi, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "json" {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("json, dot"); len(got) != 2 || got[1] != "dot" {
		t.Errorf("parseFormats(\"json, dot\") = %v", got)
	}
}

func TestSummaryCommandJSON(t *testing.T) {
	dir := t.TempDir()
	counts := writeFile(t, filepath.Join(dir, "counts.json"), sampleJSON)

	out, err := runCLI(t, dir, "summary", counts, "--json")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var flows []crossflow.Flow
	if err := json.Unmarshal([]byte(out), &flows); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(flows) != 4 || flows[1].Direction != "south" || flows[1].OutWidth != 7.5 {
		t.Errorf("flows = %+v", flows)
	}
}

func TestSummaryTable(t *testing.T) {
	var c crossflow.Crossroad
	if err := json.Unmarshal([]byte(sampleJSON), &c); err != nil {
		t.Fatal(err)
	}
	out := summaryTable(c, crossflow.ComputeTotals(c, crossflow.DefaultMaxWidth))

	for _, want := range []string{"Approach", "north", "south", "west", "east", "10.00", "7.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestTemplateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")

	if _, err := runCLI(t, dir, "template", path, "--with-style"); err != nil {
		t.Fatalf("template: %v", err)
	}
	if _, err := runCLI(t, dir, "template", path); err == nil {
		t.Error("template should refuse to overwrite without --force")
	}

	out, err := runCLI(t, dir, "summary", path, "--json")
	if err != nil {
		t.Fatalf("summary of template: %v", err)
	}
	var flows []crossflow.Flow
	if err := json.Unmarshal([]byte(out), &flows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if flows[0].In != sampleCounts.North.Total() {
		t.Errorf("north in = %v, want %v", flows[0].In, sampleCounts.North.Total())
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "crossflow.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if _, err := runCLI(t, dir, "config", "init"); err == nil {
		t.Error("config init should refuse to overwrite without --force")
	}

	t.Setenv("CROSSFLOW_SERVER_ADDR", ":9999")
	out, err := runCLI(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, ":9999") {
		t.Errorf("config show missing env override:\n%s", out)
	}
}

func TestInvalidAppConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "crossflow.yaml"), "cache:\n  backend: memcached\n")
	counts := writeFile(t, filepath.Join(dir, "counts.json"), sampleJSON)

	if _, err := runCLI(t, dir, "option", counts); err == nil {
		t.Error("expected error for invalid cache backend")
	}
}

func TestCachePathAndClear(t *testing.T) {
	dir := t.TempDir()
	counts := writeFile(t, filepath.Join(dir, "counts.json"), sampleJSON)

	out, err := runCLI(t, dir, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(dir, "cache", appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := runCLI(t, dir, "option", counts); err != nil {
		t.Fatalf("option: %v", err)
	}
	entries, err := os.ReadDir(want)
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected cache entries in %s: %v", want, err)
	}

	if _, err := runCLI(t, dir, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(want)
	if len(entries) != 0 {
		t.Errorf("cache not cleared: %d entries left", len(entries))
	}
}

func TestStyleFlagsConfig(t *testing.T) {
	f := styleFlags{maxWidth: 12, palette: "#111, ,#333"}
	cfg, err := f.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.MaxWidth == nil || *cfg.MaxWidth != 12 || cfg.Gap != nil || cfg.Palette != [4]string{"#111", "", "#333", ""} {
		t.Errorf("config = %+v", cfg)
	}

	f = styleFlags{palette: "#1,#2,#3,#4,#5"}
	if _, err := f.config(); err == nil {
		t.Error("expected error for five palette colors")
	}
}

func TestListenURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	}
	for in, want := range tests {
		if got := listenURL(in); got != want {
			t.Errorf("listenURL(%q) = %q, want %q", in, got, want)
		}
	}
}
