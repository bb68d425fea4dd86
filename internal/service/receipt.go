package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/printer"
)

// Receipt outcomes. Printing never fails the order operation that triggered it.
const (
	PrintStatusPrinted = "printed"
	PrintStatusSkipped = "skipped"
	PrintStatusFailed  = "failed"
)

// ReceiptResult reports what happened to one receipt.
type ReceiptResult struct {
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReceiptStore defines the DB methods needed to reprint receipts.
// Satisfied by *database.Queries; narrow interface for testability.
type ReceiptStore interface {
	GetOrderDetail(ctx context.Context, id uuid.UUID) (database.OrderDetailRow, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error)
}

// ReceiptDispatcher assembles kitchen tickets and payment bills and hands
// them to a print sink.
type ReceiptDispatcher struct {
	store ReceiptStore
	sink  printer.Sink
	loc   *time.Location
}

// NewReceiptDispatcher creates a dispatcher. A nil sink behaves as if no
// printer were attached.
func NewReceiptDispatcher(store ReceiptStore, sink printer.Sink, loc *time.Location) *ReceiptDispatcher {
	if sink == nil {
		sink = printer.Unavailable{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptDispatcher{store: store, sink: sink, loc: loc}
}

// KitchenTicket builds the ticket the kitchen cooks from: no prices or totals.
func (d *ReceiptDispatcher) KitchenTicket(order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) printer.Receipt {
	r := d.baseReceipt(printer.KindKitchenTicket, order, items)
	for i := range r.Lines {
		r.Lines[i].Price = ""
	}
	return r
}

// PaymentBill builds the customer bill. The total printed is the one stored
// on the order; the breakdown lines come from the current line items.
func (d *ReceiptDispatcher) PaymentBill(order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) printer.Receipt {
	r := d.baseReceipt(printer.KindPaymentBill, order, items)

	totals, err := ComputeTotals(linePrices(items), order.DiscountPercent)
	if err != nil {
		// stored discounts are CHECK constrained; fall back to no discount
		totals, _ = ComputeTotals(linePrices(items), 0)
	}

	stored := numericToDecimal(order.TotalAmount).Round(2)
	if !stored.Equal(totals.Total) {
		log.Printf("WARN: order %s stored total %s differs from line items total %s",
			order.ID, stored.StringFixed(2), totals.Total.StringFixed(2))
	}

	if order.PaymentType.Valid {
		r.PaymentType = order.PaymentType.String
	}
	r.Subtotal = totals.Subtotal.StringFixed(2)
	r.GST = totals.GST.StringFixed(2)
	r.DiscountPercent = totals.DiscountPercent
	r.DiscountAmount = totals.DiscountAmount.StringFixed(2)
	r.Total = stored.StringFixed(2)
	return r
}

func (d *ReceiptDispatcher) baseReceipt(kind string, order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) printer.Receipt {
	r := printer.Receipt{
		Kind:      kind,
		OrderID:   order.ID.String(),
		OrderType: order.OrderType,
		Timestamp: order.CreatedAt.In(d.loc),
		Lines:     make([]printer.Line, len(items)),
	}
	if order.TableNumber.Valid {
		r.TableNumber = strconv.Itoa(int(order.TableNumber.Int32))
	}
	for i, it := range items {
		r.Lines[i] = printer.Line{
			Name:     it.ItemName,
			Quantity: it.Quantity,
			Price:    numericToDecimal(it.Price).StringFixed(2),
		}
		if it.SpecialRequest.Valid {
			r.Lines[i].SpecialRequest = it.SpecialRequest.String
		}
	}
	return r
}

// SendKitchenTicket prints the kitchen ticket for an already loaded order.
func (d *ReceiptDispatcher) SendKitchenTicket(ctx context.Context, order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) ReceiptResult {
	return d.dispatch(ctx, d.KitchenTicket(order, items))
}

// SendPaymentBill prints the payment bill for an already loaded order.
func (d *ReceiptDispatcher) SendPaymentBill(ctx context.Context, order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) ReceiptResult {
	return d.dispatch(ctx, d.PaymentBill(order, items))
}

// Reprint loads the order and prints the requested receipt kind. Only
// loading the order can fail; the print outcome is always in the result.
func (d *ReceiptDispatcher) Reprint(ctx context.Context, orderID uuid.UUID, kind string) (ReceiptResult, error) {
	order, err := d.store.GetOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReceiptResult{}, ErrOrderNotFound
		}
		return ReceiptResult{}, fmt.Errorf("get order: %w", err)
	}
	items, err := d.store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return ReceiptResult{}, fmt.Errorf("list order items: %w", err)
	}

	if kind == printer.KindPaymentBill {
		return d.SendPaymentBill(ctx, order, items), nil
	}
	return d.SendKitchenTicket(ctx, order, items), nil
}

func (d *ReceiptDispatcher) dispatch(ctx context.Context, receipt printer.Receipt) ReceiptResult {
	result := ReceiptResult{Kind: receipt.Kind}

	err := d.sink.Print(ctx, printer.NewJob(receipt))
	switch {
	case err == nil:
		result.Status = PrintStatusPrinted
		result.Message = "receipt sent to printer"
	case errors.Is(err, printer.ErrUnavailable):
		log.Printf("WARN: printer not available, skipping print of %s for order %s", receipt.Kind, receipt.OrderID)
		result.Status = PrintStatusSkipped
		result.Message = "printer not available, skipping print"
	default:
		log.Printf("WARN: print %s for order %s: %v", receipt.Kind, receipt.OrderID, err)
		result.Status = PrintStatusFailed
		result.Message = "printing failed"
	}
	return result
}
