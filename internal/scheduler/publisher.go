package scheduler

import (
	"context"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/metrics"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"go.uber.org/zap"
)

// DueSettler moves scheduled content whose time has come to its final status.
type DueSettler interface {
	PublishDue(ctx context.Context) (published, failed int, err error)
}

// Publisher periodically settles due content. There is no platform
// integration behind it; publishing only changes the stored status.
type Publisher struct {
	content  DueSettler
	interval time.Duration
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewPublisher(content DueSettler, interval time.Duration, m *metrics.Metrics, logger *zap.Logger) *Publisher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Publisher{content: content, interval: interval, metrics: m, log: logger}
}

// Run ticks until ctx is cancelled. The first pass happens immediately so
// content that fell due while the process was down is not held back.
func (p *Publisher) Run(ctx context.Context) {
	p.log.Info("publisher started", zap.Duration("interval", p.interval))
	t := time.NewTicker(p.interval)
	defer t.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Info("publisher stopped")
			return
		case <-t.C:
			p.tick(ctx)
		}
	}
}

func (p *Publisher) tick(ctx context.Context) {
	published, failed, err := p.content.PublishDue(ctx)
	if p.metrics != nil {
		p.metrics.ContentPublished.WithLabelValues(string(models.StatusPublished)).Add(float64(published))
		p.metrics.ContentPublished.WithLabelValues(string(models.StatusFailed)).Add(float64(failed))
	}
	if err != nil {
		if ctx.Err() == nil {
			p.log.Error("publish due content", zap.Error(err))
		}
		return
	}
	if published+failed > 0 {
		p.log.Info("settled due content", zap.Int("published", published), zap.Int("failed", failed))
	}
}
