package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failures and
// recovered panics are logged at error level.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

// NewLogHooks returns hooks logging to l, prefixed with "hooks".
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnDecodeStart(_ context.Context, payloadSize int) {
	h.logger.Debug("decode", "bytes", payloadSize)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, holeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("decode failed", "err", err, "took", d)
		return
	}
	h.logger.Debug("decoded", "holes", holeCount, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, holeCount int) {
	h.logger.Debug("layout", "holes", holeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, clampedCount int, d time.Duration) {
	h.logger.Debug("laid out", "clamped", clampedCount, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "formats", formats, "err", err, "took", d)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "took", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnPanic(_ context.Context, method, route string, recovered any) {
	h.logger.Error("handler panic", "method", method, "route", route, "panic", recovered)
}
