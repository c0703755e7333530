package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

const flushPoll = 5 * time.Millisecond

// Sink persists audit records.
type Sink interface {
	Name() string
	Write(ctx context.Context, rec domain.AuditRecord) error
}

// Config sizes the dispatcher.
type Config struct {
	QueueSize       int
	Workers         int
	WriteTimeout    time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Stats counts records by outcome since start.
type Stats struct {
	Submitted uint64 `json:"submitted"`
	Written   uint64 `json:"written"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Dispatcher forwards records to a Sink from a bounded queue drained by a
// fixed pool of workers. Submit never blocks. Write failures are logged and
// published on Errors; they never reach the submitter.
type Dispatcher struct {
	sink    Sink
	cfg     Config
	log     *slog.Logger
	breaker *gobreaker.CircuitBreaker

	queue chan domain.AuditRecord
	errs  chan error
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	submitted atomic.Uint64
	written   atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// NewDispatcher starts cfg.Workers goroutines writing to sink.
func NewDispatcher(sink Sink, cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}

	log := logger.With("service", "audit", "sink", sink.Name())

	d := &Dispatcher{
		sink:  sink,
		cfg:   cfg,
		log:   log,
		queue: make(chan domain.AuditRecord, cfg.QueueSize),
		errs:  make(chan error, cfg.QueueSize),
		done:  make(chan struct{}),
	}

	d.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "audit-" + sink.Name(),
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("audit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	d.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go d.worker()
	}

	go func() {
		d.wg.Wait()
		close(d.errs)
		close(d.done)
	}()

	return d
}

// Submit enqueues rec. A full queue or a closed dispatcher drops the record.
func (d *Dispatcher) Submit(rec domain.AuditRecord) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		d.log.Warn("audit record dropped: dispatcher closed", slog.String("record_id", rec.ID.String()))
		return
	}

	select {
	case d.queue <- rec:
		d.submitted.Add(1)
	default:
		d.dropped.Add(1)
		d.log.Warn("audit record dropped: queue full",
			slog.String("record_id", rec.ID.String()),
			slog.Int("queue_size", d.cfg.QueueSize),
		)
	}
}

// Errors delivers write failures wrapping domain.ErrAudit. Failures are
// discarded when nobody drains the channel. It is closed once the workers
// have stopped.
func (d *Dispatcher) Errors() <-chan error { return d.errs }

// Stats returns a snapshot of the counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Submitted: d.submitted.Load(),
		Written:   d.written.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}

// Pending reports records accepted but not yet written or failed.
func (d *Dispatcher) Pending() uint64 {
	done := d.written.Load() + d.failed.Load()
	sub := d.submitted.Load()
	if done >= sub {
		return 0
	}
	return sub - done
}

// Flush waits until every accepted record has been processed or ctx ends.
// Unlike Close the dispatcher keeps accepting records; it suits runtimes
// that freeze the process between invocations.
func (d *Dispatcher) Flush(ctx context.Context) error {
	if d.Pending() == 0 {
		return nil
	}
	ticker := time.NewTicker(flushPoll)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if d.Pending() == 0 {
				return nil
			}
		case <-ctx.Done():
			return fmt.Errorf("audit: flush: %w", ctx.Err())
		}
	}
}

// Close stops accepting records and waits for the queue to drain or ctx to
// end, whichever comes first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit: drain queue: %w", ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for rec := range d.queue {
		d.write(rec)
	}
}

func (d *Dispatcher) write(rec domain.AuditRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.WriteTimeout)
	defer cancel()

	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.sink.Write(ctx, rec)
	})
	if err == nil {
		d.written.Add(1)
		return
	}

	d.failed.Add(1)
	err = fmt.Errorf("%w: %s: record %s: %w", domain.ErrAudit, d.sink.Name(), rec.ID, err)

	level := slog.LevelError
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		level = slog.LevelWarn
	}
	d.log.Log(ctx, level, "audit write failed", slog.String("error", err.Error()))

	select {
	case d.errs <- err:
	default:
	}
}
