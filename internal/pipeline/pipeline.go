package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/couchcryptid/route-hazard-engine/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize route snapshot messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer evaluates one snapshot message into an evaluation message.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader publishes evaluations to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline consumes route snapshots, evaluates them, and publishes the
// evaluations in batches.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one
// evaluation.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any evaluations yet")
	}
	return nil
}

// Run consumes batches until the context is cancelled. Extract failures
// back off and try again; load failures retry the same batch.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		start := time.Now()
		raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Error("extract failed", "error", err, "retry_in", backoff)
			if !retry.SleepWithContext(ctx, backoff) {
				break
			}
			backoff = retry.NextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = initialBackoff
		if len(raws) == 0 {
			continue
		}
		p.metrics.SnapshotsConsumed.Add(float64(len(raws)))
		p.metrics.BatchSize.Observe(float64(len(raws)))

		out := p.transformAll(ctx, raws)
		if !p.load(ctx, out) {
			break
		}
		p.commitAll(ctx, raws)
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// load publishes out, retrying with backoff until it succeeds. It returns
// false only when the context ends first, leaving the batch uncommitted.
func (p *Pipeline) load(ctx context.Context, out []domain.OutputEvent) bool {
	if len(out) == 0 {
		return true
	}

	backoff := initialBackoff
	for {
		err := p.loader.LoadBatch(ctx, out)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load failed, retrying batch", "error", err, "events", len(out), "retry_in", backoff)
		p.metrics.LoadRetries.Inc()
		if !retry.SleepWithContext(ctx, backoff) {
			return false
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}

	p.metrics.EvaluationsProduced.Add(float64(len(out)))
	p.ready.Store(true)
	return true
}

// transformAll evaluates every message. Stale snapshots are dropped quietly;
// any other transform error marks the message as poison. Dropped messages
// are still committed with the rest of the batch.
func (p *Pipeline) transformAll(ctx context.Context, raws []domain.RawEvent) []domain.OutputEvent {
	out := make([]domain.OutputEvent, 0, len(raws))
	for _, raw := range raws {
		event, err := p.transformer.Transform(ctx, raw)
		switch {
		case errors.Is(err, domain.ErrStaleSnapshot):
			p.logger.Info("stale snapshot dropped", "error", err, "partition", raw.Partition, "offset", raw.Offset)
			p.metrics.StaleSnapshots.Inc()
		case err != nil:
			p.logger.Warn("transform failed, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
		default:
			out = append(out, event)
		}
	}
	return out
}

// commitAll commits raws in the order they were extracted.
func (p *Pipeline) commitAll(ctx context.Context, raws []domain.RawEvent) {
	for _, raw := range raws {
		if raw.Commit == nil {
			continue
		}
		if err := raw.Commit(ctx); err != nil {
			p.logger.Warn("commit offset failed", "error", err,
				"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
		}
	}
}
