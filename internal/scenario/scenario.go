// Package scenario loads marketplace test cases and runs them with one
// goroutine per producer and per consumer.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/text/currency"

	"github.com/nikolayk812/marketplace-sim/internal/actor"
	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

var ErrInvalidScenario = errors.New("invalid scenario")

const defaultCurrency = "USD"

type Scenario struct {
	QueueSize int
	Producers []ProducerSpec
	Consumers []ConsumerSpec
}

type ProducerSpec struct {
	Name          string
	Lines         []actor.ProductionLine
	RepublishWait time.Duration
	Rounds        int
}

type ConsumerSpec struct {
	Name      string
	Carts     [][]actor.CartOperation
	RetryWait time.Duration
}

func LoadFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	sc, err := Load(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario[%s]: %w", path, err)
	}

	return sc, nil
}

// Load decodes and validates a scenario. All validation problems are
// reported together.
func Load(r io.Reader) (Scenario, error) {
	var file scenarioFile

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return Scenario{}, fmt.Errorf("dec.Decode: %w", err)
	}

	return file.toScenario()
}

func (f scenarioFile) toScenario() (Scenario, error) {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...)))
	}

	if f.Marketplace.QueueSizePerProducer <= 0 {
		invalid("queue_size_per_producer[%d] must be positive", f.Marketplace.QueueSizePerProducer)
	}

	fallback := f.Currency
	if fallback == "" {
		fallback = defaultCurrency
	}

	products := make(map[string]domain.Product, len(f.Products))
	for id, pf := range f.Products {
		p, err := pf.toDomain(fallback)
		if err != nil {
			invalid("product[%s]: %v", id, err)
			continue
		}
		products[id] = p
	}

	lookup := func(owner, id string) (domain.Product, bool) {
		p, ok := products[id]
		if !ok {
			if _, declared := f.Products[id]; !declared {
				invalid("%s references unknown product[%s]", owner, id)
			}
		}
		return p, ok
	}

	sc := Scenario{QueueSize: f.Marketplace.QueueSizePerProducer}

	for i, pf := range f.Producers {
		name := pf.Name
		if name == "" {
			name = fmt.Sprintf("prod%d", i+1)
		}

		spec := ProducerSpec{
			Name:          name,
			RepublishWait: seconds(pf.RepublishWaitTime),
			Rounds:        pf.Rounds,
		}
		if pf.RepublishWaitTime < 0 {
			invalid("producer[%s] republish_wait_time[%v] is negative", name, pf.RepublishWaitTime)
		}
		if pf.Rounds < 0 {
			invalid("producer[%s] rounds[%d] is negative", name, pf.Rounds)
		}

		for _, entry := range pf.Products {
			if entry.Quantity < 0 || entry.Wait < 0 {
				invalid("producer[%s] entry[%s] has negative quantity or wait", name, entry.ProductID)
			}
			p, ok := lookup("producer["+name+"]", entry.ProductID)
			if !ok {
				continue
			}
			spec.Lines = append(spec.Lines, actor.ProductionLine{
				Product:  p,
				Quantity: entry.Quantity,
				Wait:     seconds(entry.Wait),
			})
		}

		sc.Producers = append(sc.Producers, spec)
	}

	for i, cf := range f.Consumers {
		name := cf.Name
		if name == "" {
			name = fmt.Sprintf("cons%d", i+1)
		}

		spec := ConsumerSpec{
			Name:      name,
			RetryWait: seconds(cf.RetryWaitTime),
		}
		if cf.RetryWaitTime < 0 {
			invalid("consumer[%s] retry_wait_time[%v] is negative", name, cf.RetryWaitTime)
		}

		for _, cart := range cf.Carts {
			ops := make([]actor.CartOperation, 0, len(cart))
			for _, of := range cart {
				kind, err := actor.ParseOperationKind(of.Type)
				if err != nil {
					invalid("consumer[%s]: %v", name, err)
					continue
				}
				if of.Quantity < 0 {
					invalid("consumer[%s] %s[%s] quantity[%d] is negative", name, kind, of.Product, of.Quantity)
				}
				p, ok := lookup("consumer["+name+"]", of.Product)
				if !ok {
					continue
				}
				ops = append(ops, actor.CartOperation{Kind: kind, Product: p, Quantity: of.Quantity})
			}
			spec.Carts = append(spec.Carts, ops)
		}

		sc.Consumers = append(sc.Consumers, spec)
	}

	if len(errs) > 0 {
		return Scenario{}, errors.Join(errs...)
	}

	return sc, nil
}

func (pf productFile) toDomain(fallbackCurrency string) (domain.Product, error) {
	category, err := domain.ParseCategory(pf.ProductType)
	if err != nil {
		return domain.Product{}, err
	}

	if strings.TrimSpace(pf.Name) == "" {
		return domain.Product{}, errors.New("name is empty")
	}
	if pf.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("price[%s] is negative", pf.Price)
	}

	code := pf.Currency
	if code == "" {
		code = fallbackCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	price := domain.NewMoney(pf.Price, unit)

	switch category {
	case domain.CategoryCoffee:
		return domain.NewCoffee(pf.Name, price, pf.Acidity, pf.RoastLevel), nil
	default:
		return domain.NewTea(pf.Name, price, pf.Type), nil
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
