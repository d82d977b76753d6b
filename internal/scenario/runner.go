package scenario

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nikolayk812/marketplace-sim/internal/actor"
	"github.com/nikolayk812/marketplace-sim/internal/domain"
	"github.com/nikolayk812/marketplace-sim/internal/market"
	"github.com/nikolayk812/marketplace-sim/internal/port"
)

type Result struct {
	// Receipts are ordered by consumer name, then cart id.
	Receipts []domain.Receipt
	Stats    market.Stats
	Elapsed  time.Duration
}

type Runner struct {
	logger   *slog.Logger
	reporter port.OrderReporter
}

type RunnerOption func(*Runner)

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

func WithReporter(reporter port.OrderReporter) RunnerOption {
	return func(r *Runner) { r.reporter = reporter }
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts every producer and consumer on a fresh marketplace and returns
// once all consumers have checked out their carts. Producers are stopped then.
// A failing actor cancels the whole run.
func (r *Runner) Run(ctx context.Context, sc Scenario) (Result, error) {
	m, err := market.NewMarketplace(sc.QueueSize)
	if err != nil {
		return Result{}, fmt.Errorf("market.NewMarketplace: %w", err)
	}

	r.logger.Info("scenario started",
		slog.Int("queue_size", sc.QueueSize),
		slog.Int("producers", len(sc.Producers)),
		slog.Int("consumers", len(sc.Consumers)),
	)
	start := time.Now()

	runCtx, cancelRun := context.WithCancelCause(ctx)
	defer cancelRun(nil)

	prodCtx, stopProducers := context.WithCancel(runCtx)
	defer stopProducers()

	fail := func(err error) error {
		cancelRun(err)
		return err
	}

	var producers errgroup.Group
	for _, spec := range sc.Producers {
		p := actor.NewProducer(spec.Name, m, spec.Lines, spec.RepublishWait,
			actor.WithRounds(spec.Rounds),
			actor.WithProducerLogger(r.logger),
		)
		producers.Go(func() error {
			err := p.Run(prodCtx)
			if err == nil || prodCtx.Err() != nil {
				return nil
			}
			return fail(fmt.Errorf("producer[%s]: %w", p.Name(), err))
		})
	}

	var (
		mu       sync.Mutex
		receipts []domain.Receipt
	)

	var consumers errgroup.Group
	for _, spec := range sc.Consumers {
		opts := []actor.ConsumerOption{actor.WithConsumerLogger(r.logger)}
		if r.reporter != nil {
			opts = append(opts, actor.WithReporter(r.reporter))
		}
		c := actor.NewConsumer(spec.Name, m, spec.Carts, spec.RetryWait, opts...)

		consumers.Go(func() error {
			got, err := c.Run(runCtx)

			mu.Lock()
			receipts = append(receipts, got...)
			mu.Unlock()

			if err == nil {
				return nil
			}
			// the run was cancelled by another actor's failure, which is reported there
			if errors.Is(err, context.Canceled) && ctx.Err() == nil {
				return nil
			}
			return fail(fmt.Errorf("consumer[%s]: %w", c.Name(), err))
		})
	}

	consumerErr := consumers.Wait()
	stopProducers()
	producerErr := producers.Wait()

	slices.SortFunc(receipts, func(a, b domain.Receipt) int {
		return cmp.Or(strings.Compare(a.Consumer, b.Consumer), cmp.Compare(a.CartID, b.CartID))
	})

	result := Result{
		Receipts: receipts,
		Stats:    m.Stats(),
		Elapsed:  time.Since(start),
	}

	if err := errors.Join(producerErr, consumerErr); err != nil {
		r.logger.Error("scenario failed", slog.String("error", err.Error()))
		return result, err
	}

	r.logger.Info("scenario finished",
		slog.Int("orders", len(result.Receipts)),
		slog.Int("sold", result.Stats.Sold),
		slog.Int("pooled", result.Stats.Pooled),
		slog.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}
