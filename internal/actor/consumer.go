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

var (
	ErrUnknownOperation = errors.New("unknown cart operation")

	errOutOfStock = errors.New("out of stock")
)

type OperationKind string

const (
	OperationAdd    OperationKind = "add"
	OperationRemove OperationKind = "remove"
)

func ParseOperationKind(s string) (OperationKind, error) {
	switch k := OperationKind(s); k {
	case OperationAdd, OperationRemove:
		return k, nil
	default:
		return "", fmt.Errorf("operation[%s]: %w", s, ErrUnknownOperation)
	}
}

// CartOperation adds or removes Quantity units of Product, one at a time.
type CartOperation struct {
	Kind     OperationKind
	Product  domain.Product
	Quantity int
}

type Consumer struct {
	name      string
	market    port.ConsumerMarket
	carts     [][]CartOperation
	retryWait time.Duration
	reporter  port.OrderReporter
	logger    *slog.Logger
}

type ConsumerOption func(*Consumer)

func WithReporter(r port.OrderReporter) ConsumerOption {
	return func(c *Consumer) { c.reporter = r }
}

func WithConsumerLogger(logger *slog.Logger) ConsumerOption {
	return func(c *Consumer) { c.logger = logger }
}

func NewConsumer(
	name string,
	market port.ConsumerMarket,
	carts [][]CartOperation,
	retryWait time.Duration,
	opts ...ConsumerOption,
) *Consumer {
	c := &Consumer{
		name:      name,
		market:    market,
		carts:     carts,
		retryWait: retryWait,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Consumer) Name() string { return c.name }

// Run fills and checks out every scripted cart in order. It returns the
// receipts of the carts checked out before any error.
func (c *Consumer) Run(ctx context.Context) ([]domain.Receipt, error) {
	logger := c.logger.With(slog.String("consumer", c.name))
	receipts := make([]domain.Receipt, 0, len(c.carts))

	for _, ops := range c.carts {
		receipt, err := c.shop(ctx, logger, ops)
		if err != nil {
			return receipts, err
		}
		receipts = append(receipts, receipt)
	}

	logger.Info("consumer finished", slog.Int("carts", len(receipts)))

	return receipts, nil
}

func (c *Consumer) shop(ctx context.Context, logger *slog.Logger, ops []CartOperation) (domain.Receipt, error) {
	cartID := c.market.NewCart()
	logger = logger.With(slog.Int("cart_id", int(cartID)))

	for _, op := range ops {
		for range op.Quantity {
			if err := c.apply(ctx, logger, cartID, op); err != nil {
				return domain.Receipt{}, err
			}
		}
	}

	products, err := c.market.PlaceOrder(cartID)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("market.PlaceOrder: %w", err)
	}

	receipt := domain.NewReceipt(c.name, cartID, products)
	logger.Info("order placed", slog.String("receipt_id", receipt.ID.String()), slog.Int("items", len(products)))

	if c.reporter != nil {
		if err := c.reporter.Report(receipt); err != nil {
			return receipt, fmt.Errorf("reporter.Report: %w", err)
		}
	}

	return receipt, nil
}

func (c *Consumer) apply(ctx context.Context, logger *slog.Logger, cartID domain.CartID, op CartOperation) error {
	switch op.Kind {
	case OperationAdd:
		return c.add(ctx, logger, cartID, op.Product)
	case OperationRemove:
		if err := c.market.RemoveFromCart(cartID, op.Product); err != nil {
			return fmt.Errorf("market.RemoveFromCart: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("operation[%s]: %w", op.Kind, ErrUnknownOperation)
	}
}

func (c *Consumer) add(ctx context.Context, logger *slog.Logger, cartID domain.CartID, product domain.Product) error {
	op := func() error {
		ok, err := c.market.AddToCart(cartID, product)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("market.AddToCart: %w", err))
		}
		if !ok {
			return errOutOfStock
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.Debug("add deferred",
			slog.String("product", product.String()),
			slog.Duration("retry_in", next),
			slog.String("reason", err.Error()),
		)
	}

	return retryConstant(ctx, c.retryWait, op, notify)
}
