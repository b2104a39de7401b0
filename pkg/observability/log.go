package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and HTTP events as debug log lines.
// The CLI installs it when running with --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger. A nil logger uses the
// package-level default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, key string) {
	h.logger.Debug("build start", "key", short(key))
}

func (h *LogHooks) OnBuildComplete(_ context.Context, key string, nodes, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("build failed", "key", short(key), "err", err)
		return
	}
	h.logger.Debug("build complete", "key", short(key), "nodes", nodes, "links", links, "took", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("export start", "formats", formats)
}

func (h *LogHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("export complete", "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}

// short trims cache keys to prefix plus 12 hash characters.
func short(key string) string {
	const n = 12
	for i := 0; i < len(key); i++ {
		if key[i] == ':' && len(key) > i+1+n {
			return key[:i+1+n]
		}
	}
	return key
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
