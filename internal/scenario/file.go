package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// The on-disk test-case format. Durations are seconds.
type scenarioFile struct {
	Products    map[string]productFile `json:"products"`
	Producers   []producerFile         `json:"producers"`
	Consumers   []consumerFile         `json:"consumers"`
	Marketplace marketplaceFile        `json:"marketplace"`
	Currency    string                 `json:"currency"`
}

type marketplaceFile struct {
	QueueSizePerProducer int `json:"queue_size_per_producer"`
}

type productFile struct {
	ProductType string          `json:"product_type"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Type        string          `json:"type"`
	Acidity     decimal.Decimal `json:"acidity"`
	RoastLevel  string          `json:"roast_level"`
}

type producerFile struct {
	Name              string            `json:"name"`
	Products          []productionEntry `json:"products"`
	RepublishWaitTime float64           `json:"republish_wait_time"`
	Rounds            int               `json:"rounds"`
}

// productionEntry is encoded as a [product id, quantity, wait] triple.
type productionEntry struct {
	ProductID string
	Quantity  int
	Wait      float64
}

func (e *productionEntry) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("production entry has %d fields, want [product, quantity, wait]", len(raw))
	}

	if err := json.Unmarshal(raw[0], &e.ProductID); err != nil {
		return fmt.Errorf("product: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Quantity); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if err := json.Unmarshal(raw[2], &e.Wait); err != nil {
		return fmt.Errorf("wait: %w", err)
	}

	return nil
}

type consumerFile struct {
	Name          string            `json:"name"`
	RetryWaitTime float64           `json:"retry_wait_time"`
	Carts         [][]operationFile `json:"carts"`
}

type operationFile struct {
	Type     string `json:"type"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}
