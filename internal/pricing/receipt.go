package pricing

import (
	"fmt"
	"io"
)

// Receipt renders one "<quantity> <label>: $<cost>" entry per line, using the cost charged at add time.
func (o *Order) Receipt() []string {
	out := make([]string, 0, len(o.lines))
	for _, line := range o.lines {
		out = append(out, fmt.Sprintf("%d %s: $%s", line.Quantity, line.PizzaType.Label(), line.Cost.String()))
	}
	return out
}

// WriteReceipt prints the receipt to w, one entry per line.
func (o *Order) WriteReceipt(w io.Writer) error {
	for _, entry := range o.Receipt() {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return fmt.Errorf("write receipt: %w", err)
		}
	}
	return nil
}
