package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossflow/pkg/cache"
	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
	"github.com/matzehuels/crossflow/pkg/observability"
)

var sample = crossflow.Crossroad{
	North: crossflow.Movements{Left: 1, Front: 2, Right: 1},
	South: crossflow.Movements{Front: 3, Turn: 1},
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"json", "png"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Counts: sample}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger default not set")
	}
}

func TestOptionsStrict(t *testing.T) {
	bad := crossflow.Crossroad{East: crossflow.Movements{Left: -3}}

	lenient := Options{Counts: bad}
	if err := lenient.ValidateForBuild(); err != nil {
		t.Errorf("non-strict options rejected negative counts: %v", err)
	}

	strict := Options{Counts: bad, Strict: true}
	if err := strict.ValidateForBuild(); !errors.Is(err, errors.ErrCodeInvalidCounts) {
		t.Errorf("strict ValidateForBuild() = %v, want INVALID_COUNTS", err)
	}
}

func TestOptionsInvalidConfig(t *testing.T) {
	opts := Options{Config: crossflow.Config{Height: crossflow.Float(-5)}}
	if err := opts.ValidateForBuild(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ValidateForBuild() = %v, want INVALID_CONFIG", err)
	}
}

func TestExport(t *testing.T) {
	opt := crossflow.Build(sample, crossflow.Config{})
	artifacts, err := Export(context.Background(), opt, Options{Formats: []string{FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var decoded crossflow.Option
	if err := json.Unmarshal(artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact does not decode: %v", err)
	}
	if len(decoded.Graph().Data) != crossflow.NodeCount {
		t.Errorf("decoded nodes = %d", len(decoded.Graph().Data))
	}
	if !bytes.HasPrefix(artifacts[FormatDOT], []byte("digraph crossflow")) {
		t.Errorf("dot artifact = %.40q", artifacts[FormatDOT])
	}

	if _, err := Export(context.Background(), opt, Options{Formats: []string{"svg"}}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Export(svg) error = %v, want UNSUPPORTED", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	defer runner.Close()

	opts := Options{Counts: sample, Formats: []string{FormatJSON, FormatDOT}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.ExportHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}
	if first.Stats.NodeCount != crossflow.NodeCount || first.Stats.LinkCount != crossflow.LinkCount {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if first.Totals.In[crossflow.North] != 4 || first.Totals.Max != 4 {
		t.Errorf("Totals = %+v", first.Totals)
	}
	if len(first.OptionHash) != 64 {
		t.Errorf("OptionHash = %q", first.OptionHash)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.BuildHit || !second.CacheInfo.ExportHit {
		t.Errorf("second run missed cache: %+v", second.CacheInfo)
	}
	if second.OptionHash != first.OptionHash {
		t.Error("cached option differs from built option")
	}
	if !bytes.Equal(second.Artifacts[FormatDOT], first.Artifacts[FormatDOT]) {
		t.Error("cached dot artifact differs")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo.BuildHit || third.CacheInfo.ExportHit {
		t.Errorf("refresh run hit cache: %+v", third.CacheInfo)
	}
}

func TestRunnerConfigChangesKey(t *testing.T) {
	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	runner := NewRunner(c, nil, nil)

	if _, hit, _ := runner.BuildWithCacheInfo(ctx, Options{Counts: sample}); hit {
		t.Fatal("unexpected hit on empty cache")
	}
	opt, hit, err := runner.BuildWithCacheInfo(ctx, Options{Counts: sample, Config: crossflow.Config{BoxSize: crossflow.Float(300)}})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different config served from cache")
	}
	if ni, _ := opt.Node("ni"); ni.X != 130 {
		t.Errorf("ni.X = %v, want 130", ni.X)
	}

	// An explicit default is the same style as the zero config.
	if _, hit, _ := runner.BuildWithCacheInfo(ctx, Options{Counts: sample, Config: crossflow.Config{BoxSize: crossflow.Float(crossflow.DefaultBoxSize)}}); !hit {
		t.Error("explicit default config missed the cache")
	}
}

func TestRunnerUncacheableCounts(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	c := crossflow.Crossroad{West: crossflow.Movements{Front: math.Inf(1)}}

	opt, hit, err := runner.BuildWithCacheInfo(context.Background(), Options{Counts: c})
	if err != nil {
		t.Fatalf("BuildWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("uncacheable counts reported a hit")
	}
	if len(opt.Graph().Data) != crossflow.NodeCount {
		t.Error("option incomplete")
	}

	if _, err := runner.Build(context.Background(), Options{Counts: c, Strict: true}); !errors.Is(err, errors.ErrCodeInvalidCounts) {
		t.Errorf("strict Build() error = %v", err)
	}
}

func TestRunnerEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	observability.SetCacheHooks(rec)

	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Execute(context.Background(), Options{Counts: sample}); err != nil {
		t.Fatal(err)
	}

	got := strings.Join(rec.events, ",")
	want := "miss:option,build,built:36:16,miss:artifact,export,exported:json"
	if got != want {
		t.Errorf("events = %s\nwant     %s", got, want)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	events []string
}

func (r *recordingHooks) OnBuildStart(context.Context, string) {
	r.events = append(r.events, "build")
}

func (r *recordingHooks) OnBuildComplete(_ context.Context, _ string, nodes, links int, _ time.Duration, _ error) {
	r.events = append(r.events, "built:"+strconv.Itoa(nodes)+":"+strconv.Itoa(links))
}

func (r *recordingHooks) OnExportStart(context.Context, []string) {
	r.events = append(r.events, "export")
}

func (r *recordingHooks) OnExportComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	r.events = append(r.events, "exported:"+strings.Join(formats, "+"))
}

func (r *recordingHooks) OnCacheMiss(_ context.Context, keyType string) {
	r.events = append(r.events, "miss:"+keyType)
}
