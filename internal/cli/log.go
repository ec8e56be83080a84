package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nameplate/pkg/observability"
)

// newLogger returns a charmbracelet logger on w with short wall-clock
// timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a CLI step took, e.g. "Arranged 12 cards (3ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx for the commands run under it.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports controller, render, cache and HTTP events to a logger at
// debug level.
type logHooks struct {
	logger *log.Logger
}

// installLogHooks registers logHooks for every observability hook set.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetArrangeHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnArrange(_ context.Context, strategy string, cards int, trigger string, d time.Duration) {
	h.logger.Debug("Arrange", "strategy", strategy, "cards", cards, "trigger", trigger, "took", d)
}

func (h logHooks) OnInteraction(_ context.Context, action string, cardID int, err error) {
	if err != nil {
		h.logger.Debug("Interaction rejected", "action", action, "card", cardID, "err", err)
		return
	}
	h.logger.Debug("Interaction", "action", action, "card", cardID)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("Render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("Render complete", "formats", formats, "took", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string)  { h.logger.Debug("Cache hit", "kind", keyType) }
func (h logHooks) OnCacheMiss(_ context.Context, keyType string) { h.logger.Debug("Cache miss", "kind", keyType) }

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "kind", keyType, "bytes", size)
}

func (h logHooks) OnRequest(context.Context, string, string) {}

func (h logHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

func (h logHooks) OnFeed(_ context.Context, event string, clients int) {
	h.logger.Debug("Feed", "event", event, "clients", clients)
}
