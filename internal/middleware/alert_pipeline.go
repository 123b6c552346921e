package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CloudLab/internal/domain/models"
	domrepo "CloudLab/internal/domain/repository"
	"CloudLab/internal/service/ratelimit"
)

// Proc is the minimal processor interface the pipeline needs.
// ProcessBatch reports how many alerts left the process.
type Proc interface {
	Process(ctx context.Context, a *models.Alert) error
	ProcessBatch(ctx context.Context, alerts []*models.Alert) (int, error)
}

// AlertPipeline sits between the SOC lab and the alert backend.
// It validates, throttles per geo, and buffers when downstream is unavailable.
type AlertPipeline struct {
	proc      Proc
	metrics   domrepo.Metrics
	maxPerGeo int
	bufSize   int
	bufCh     chan *models.Alert
	stopCh    chan struct{}
	started   bool
	mu        sync.Mutex
	limiter   *ratelimit.Limiter // one bucket per geo
	now       func() time.Time
}

type PipelineOption func(*AlertPipeline)

// WithMaxPerGeo sets the max alerts per second per geo. Bursts up to the
// same count are accepted at once.
func WithMaxPerGeo(n int) PipelineOption {
	return func(p *AlertPipeline) {
		if n > 0 {
			p.maxPerGeo = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *AlertPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewAlertPipeline creates a new pipeline.
func NewAlertPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *AlertPipeline {
	if metrics == nil {
		metrics = domrepo.NopMetrics{}
	}
	p := &AlertPipeline{
		proc:      proc,
		metrics:   metrics,
		maxPerGeo: 50,
		bufSize:   1000,
		stopCh:    make(chan struct{}),
		limiter:   ratelimit.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan *models.Alert, p.bufSize)
	return p
}

// Start launches background flushing of buffered alerts.
func (p *AlertPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			case a := <-p.bufCh:
				if err := p.proc.Process(ctx, a); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					select {
					case <-time.After(backoff):
					case <-p.stopCh:
						return
					}
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- a:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *AlertPipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.started = false
	close(p.stopCh)
}

// Buffered reports how many alerts wait for a retry.
func (p *AlertPipeline) Buffered() int { return len(p.bufCh) }

// ProcessBatch forwards the valid, unthrottled alerts in one downstream
// call and returns how many were delivered. Invalid and throttled alerts
// are dropped. On a downstream error the accepted alerts are buffered.
func (p *AlertPipeline) ProcessBatch(ctx context.Context, alerts []*models.Alert) (int, error) {
	start := p.now()
	accepted := make([]*models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if err := validateAlert(a); err != nil {
			p.metrics.RecordError("pipeline_validate")
			continue
		}
		if !p.allow(a.Geo, start) {
			p.metrics.RecordError("pipeline_throttle")
			continue
		}
		accepted = append(accepted, a)
	}
	if len(accepted) == 0 {
		return 0, nil
	}

	n, err := p.proc.ProcessBatch(ctx, accepted)
	if err != nil {
		p.metrics.RecordError("pipeline_process")
		for _, a := range accepted {
			p.buffer(a)
		}
		return 0, fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process_batch", time.Since(start).Seconds())
	return n, nil
}

func (p *AlertPipeline) buffer(a *models.Alert) {
	select {
	case p.bufCh <- a:
	default:
		p.metrics.RecordError("pipeline_buffer_full")
	}
}

func validateAlert(a *models.Alert) error {
	if a == nil {
		return fmt.Errorf("alert nil")
	}
	if a.ID == "" || a.RunID == "" {
		return fmt.Errorf("alert id or run id empty")
	}
	if a.Geo == "" {
		return fmt.Errorf("geo empty")
	}
	if a.Hour < 0 || a.Hour > 23 {
		return fmt.Errorf("hour %d invalid", a.Hour)
	}
	if a.CreatedAt.IsZero() {
		return fmt.Errorf("created_at missing")
	}
	return nil
}

func (p *AlertPipeline) allow(geo string, now time.Time) bool {
	if p.maxPerGeo <= 0 {
		return true
	}
	rate := float64(p.maxPerGeo)
	return p.limiter.AllowAt(geo, rate, rate, now)
}
