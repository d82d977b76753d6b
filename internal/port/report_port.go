package port

import (
	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

type OrderReporter interface {
	Report(receipt domain.Receipt) error
}
