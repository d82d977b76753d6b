package report

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/nikolayk812/marketplace-sim/internal/domain"
	"github.com/nikolayk812/marketplace-sim/internal/port"
)

var _ port.OrderReporter = (*Printer)(nil)

// Printer writes one "<consumer> bought <product>" line per sold item. A whole
// receipt is written under one lock, so lines from concurrent consumers never
// interleave.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Report(receipt domain.Receipt) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	bw := bufio.NewWriter(p.w)
	for _, item := range receipt.Items {
		if _, err := fmt.Fprintf(bw, "%s bought %s\n", receipt.Consumer, item); err != nil {
			return fmt.Errorf("fmt.Fprintf: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("bw.Flush: %w", err)
	}

	return nil
}
