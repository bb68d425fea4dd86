// Package printer delivers receipts to whatever can print them: an HTTP print
// agent next to the thermal printer, a message broker, or websocket listeners.
package printer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vold333/kitchen-order-ticket/internal/enum"
)

// ErrUnavailable means no printer could be reached. Callers treat it as a skip.
var ErrUnavailable = errors.New("printer unavailable")

const (
	KindKitchenTicket = enum.ReceiptKitchenTicket
	KindPaymentBill   = enum.ReceiptPaymentBill
)

// Sink accepts a print job.
type Sink interface {
	Print(ctx context.Context, job Job) error
}

// Line is one order line as printed.
type Line struct {
	Name           string `json:"name"`
	Quantity       int32  `json:"quantity"`
	SpecialRequest string `json:"special_request,omitempty"`
	Price          string `json:"price,omitempty"`
}

// Receipt is the structured content of a kitchen ticket or payment bill.
// Money fields are 2-decimal strings and are empty on kitchen tickets.
type Receipt struct {
	Kind            string    `json:"kind"`
	OrderID         string    `json:"order_id"`
	TableNumber     string    `json:"table_number,omitempty"`
	OrderType       string    `json:"order_type"`
	Timestamp       time.Time `json:"timestamp"`
	Lines           []Line    `json:"lines"`
	PaymentType     string    `json:"payment_type,omitempty"`
	Subtotal        string    `json:"subtotal,omitempty"`
	GST             string    `json:"gst,omitempty"`
	DiscountPercent int32     `json:"discount_percent,omitempty"`
	DiscountAmount  string    `json:"discount_amount,omitempty"`
	Total           string    `json:"total,omitempty"`
}

// Job is what a sink receives: the receipt plus its plain-text rendering.
type Job struct {
	Receipt Receipt `json:"receipt"`
	Text    string  `json:"text"`
}

// NewJob renders r into a job.
func NewJob(r Receipt) Job {
	return Job{Receipt: r, Text: Render(r)}
}

const (
	paperWidth = 32
	rule       = "--------------------------------"
)

// Render lays out r for a 32-column thermal printer.
func Render(r Receipt) string {
	var b strings.Builder

	title := "KITCHEN ORDER"
	if r.Kind == KindPaymentBill {
		title = "PAYMENT BILL"
	}
	b.WriteString(center(title))
	b.WriteString("\n")
	b.WriteString(rule + "\n")

	table := r.TableNumber
	if table == "" {
		table = "N/A"
	}
	fmt.Fprintf(&b, "Table: %s\n", table)
	fmt.Fprintf(&b, "Order ID: %s\n", r.OrderID)
	fmt.Fprintf(&b, "Type: %s\n", r.OrderType)
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format("2006-01-02 15:04"))
	b.WriteString(rule + "\n")

	for _, l := range r.Lines {
		name := fmt.Sprintf("%dx %s", l.Quantity, l.Name)
		if l.SpecialRequest != "" {
			name += " (" + l.SpecialRequest + ")"
		}
		if r.Kind == KindPaymentBill {
			b.WriteString(columns(name, l.Price))
		} else {
			b.WriteString(name)
		}
		b.WriteString("\n")
	}

	if r.Kind == KindPaymentBill {
		b.WriteString(rule + "\n")
		payment := r.PaymentType
		if payment == "" {
			payment = "-"
		}
		b.WriteString(columns("Payment:", payment) + "\n")
		b.WriteString(columns("Subtotal:", r.Subtotal) + "\n")
		b.WriteString(columns("GST (9%):", r.GST) + "\n")
		b.WriteString(columns(fmt.Sprintf("Discount (%d%%):", r.DiscountPercent), "-"+r.DiscountAmount) + "\n")
		b.WriteString(columns("Total:", r.Total) + "\n")
		b.WriteString(rule + "\n")
		b.WriteString(center("Thank You! Please Visit Again!") + "\n")
	}

	return b.String()
}

func center(s string) string {
	if len(s) >= paperWidth {
		return s
	}
	return strings.Repeat(" ", (paperWidth-len(s))/2) + s
}

func columns(left, right string) string {
	gap := paperWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
