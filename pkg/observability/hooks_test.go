package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, "option:abc")
	p.OnBuildComplete(ctx, "option:abc", 36, 16, time.Second, nil)
	p.OnExportStart(ctx, []string{"json"})
	p.OnExportComplete(ctx, []string{"json"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "option")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "layout", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/option")
	h.OnResponse(ctx, "POST", "/api/option", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	h.Install()

	ctx := context.Background()
	Pipeline().OnBuildComplete(ctx, "option:0123456789abcdef0123", 36, 16, time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "artifact")
	Pipeline().OnExportComplete(ctx, []string{"dot"}, 0, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"build complete", "option:0123456789ab", "cache miss", "export failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef0123") {
		t.Error("cache key not shortened")
	}
}

func TestShort(t *testing.T) {
	tests := map[string]string{
		"layout:1":                    "layout:1",
		"option:0123456789abcdef":     "option:0123456789ab",
		"no-colon-0123456789abcdefgh": "no-colon-0123456789abcdefgh",
	}
	for in, want := range tests {
		if got := short(in); got != want {
			t.Errorf("short(%q) = %q, want %q", in, got, want)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
