package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nikolayk812/marketplace-sim/internal/domain"
	"github.com/nikolayk812/marketplace-sim/internal/port"
)

var errQuotaFull = errors.New("quota full")

// ProductionLine publishes Quantity units of Product, pausing Wait after each one.
type ProductionLine struct {
	Product  domain.Product
	Quantity int
	Wait     time.Duration
}

type Producer struct {
	name          string
	market        port.ProducerMarket
	lines         []ProductionLine
	republishWait time.Duration
	rounds        int
	logger        *slog.Logger
}

type ProducerOption func(*Producer)

// WithRounds limits how many passes the producer makes over its lines.
// Zero, the default, repeats until the context is cancelled.
func WithRounds(n int) ProducerOption {
	return func(p *Producer) { p.rounds = n }
}

func WithProducerLogger(logger *slog.Logger) ProducerOption {
	return func(p *Producer) { p.logger = logger }
}

func NewProducer(
	name string,
	market port.ProducerMarket,
	lines []ProductionLine,
	republishWait time.Duration,
	opts ...ProducerOption,
) *Producer {
	p := &Producer{
		name:          name,
		market:        market,
		lines:         lines,
		republishWait: republishWait,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Producer) Name() string { return p.name }

// Run registers the producer and publishes its lines. A full quota is retried
// every republishWait; contract errors stop the producer.
func (p *Producer) Run(ctx context.Context) error {
	id := p.market.RegisterProducer()
	logger := p.logger.With(slog.String("producer", p.name), slog.Int("producer_id", int(id)))

	logger.Info("producer registered", slog.Int("lines", len(p.lines)), slog.Int("rounds", p.rounds))

	if len(p.lines) == 0 {
		return nil
	}

	for round := 0; p.rounds == 0 || round < p.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, line := range p.lines {
			for range line.Quantity {
				if err := p.publish(ctx, logger, id, line.Product); err != nil {
					return err
				}
				if err := sleep(ctx, line.Wait); err != nil {
					return err
				}
			}
		}
	}

	logger.Info("producer finished")

	return nil
}

func (p *Producer) publish(ctx context.Context, logger *slog.Logger, id domain.ProducerID, product domain.Product) error {
	op := func() error {
		ok, err := p.market.Publish(id, product)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("market.Publish: %w", err))
		}
		if !ok {
			return errQuotaFull
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.Debug("publish deferred",
			slog.String("product", product.String()),
			slog.Duration("retry_in", next),
			slog.String("reason", err.Error()),
		)
	}

	if err := retryConstant(ctx, p.republishWait, op, notify); err != nil {
		return err
	}

	logger.Debug("published", slog.String("product", product.String()))

	return nil
}
