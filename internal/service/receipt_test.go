package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/printer"
)

type recordingSink struct {
	err  error
	jobs []printer.Job
}

func (s *recordingSink) Print(ctx context.Context, job printer.Job) error {
	s.jobs = append(s.jobs, job)
	return s.err
}

type mockReceiptStore struct {
	getOrderDetailFn        func(ctx context.Context, id uuid.UUID) (database.OrderDetailRow, error)
	listOrderItemsByOrderFn func(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error)
}

func (m *mockReceiptStore) GetOrderDetail(ctx context.Context, id uuid.UUID) (database.OrderDetailRow, error) {
	return m.getOrderDetailFn(ctx, id)
}
func (m *mockReceiptStore) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error) {
	return m.listOrderItemsByOrderFn(ctx, orderID)
}

func sampleOrder() (database.OrderDetailRow, []database.ListOrderItemsByOrderRow) {
	order := database.OrderDetailRow{
		Order: database.Order{
			ID:              uuid.New(),
			Status:          "served",
			OrderType:       "dine_in",
			DiscountPercent: 10,
			TotalAmount:     makeNumeric("19.62"),
			PaymentType:     pgtype.Text{String: "card", Valid: true},
			CreatedAt:       time.Date(2026, 3, 2, 4, 15, 0, 0, time.UTC),
		},
		TableNumber: pgtype.Int4{Int32: 7, Valid: true},
	}
	items := []database.ListOrderItemsByOrderRow{
		{
			OrderItem: database.OrderItem{Quantity: 2, Price: makeNumeric("20.00"),
				SpecialRequest: pgtype.Text{String: "no egg", Valid: true}},
			ItemName: "Laksa",
		},
	}
	return order, items
}

func TestKitchenTicket_HasNoPrices(t *testing.T) {
	d := NewReceiptDispatcher(nil, nil, time.UTC)
	order, items := sampleOrder()

	r := d.KitchenTicket(order, items)
	if r.Kind != printer.KindKitchenTicket {
		t.Errorf("kind: got %q", r.Kind)
	}
	if r.TableNumber != "7" {
		t.Errorf("table: got %q", r.TableNumber)
	}
	if r.Total != "" || r.Lines[0].Price != "" {
		t.Errorf("kitchen ticket must not carry prices: %+v", r)
	}
	if r.Lines[0].SpecialRequest != "no egg" {
		t.Errorf("special request: got %q", r.Lines[0].SpecialRequest)
	}
}

func TestPaymentBill_UsesStoredDiscount(t *testing.T) {
	sgt := time.FixedZone("SGT", 8*3600)
	d := NewReceiptDispatcher(nil, nil, sgt)
	order, items := sampleOrder()

	r := d.PaymentBill(order, items)
	if r.Subtotal != "20.00" || r.GST != "1.80" || r.DiscountAmount != "2.18" || r.Total != "19.62" {
		t.Errorf("unexpected bill totals: %+v", r)
	}
	if r.PaymentType != "card" {
		t.Errorf("payment type: got %q", r.PaymentType)
	}
	if r.Timestamp.Hour() != 12 {
		t.Errorf("timestamp should be local, got %v", r.Timestamp)
	}
}

func TestPaymentBill_PrintsStoredTotal(t *testing.T) {
	d := NewReceiptDispatcher(nil, nil, time.UTC)
	order, items := sampleOrder()
	order.TotalAmount = makeNumeric("25.00")

	r := d.PaymentBill(order, items)
	if r.Total != "25.00" {
		t.Errorf("bill total must be the stored total, got %q", r.Total)
	}
}

func TestDispatch_Outcomes(t *testing.T) {
	order, items := sampleOrder()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"printed", nil, PrintStatusPrinted},
		{"unavailable", printer.ErrUnavailable, PrintStatusSkipped},
		{"failed", errors.New("paper jam"), PrintStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{err: tt.err}
			d := NewReceiptDispatcher(nil, sink, time.UTC)

			res := d.SendPaymentBill(context.Background(), order, items)
			if res.Status != tt.want {
				t.Errorf("status: got %q, want %q", res.Status, tt.want)
			}
			if res.Kind != printer.KindPaymentBill {
				t.Errorf("kind: got %q", res.Kind)
			}
			if len(sink.jobs) != 1 || !strings.Contains(sink.jobs[0].Text, "PAYMENT BILL") {
				t.Errorf("expected one rendered bill job")
			}
		})
	}
}

func TestDispatch_NoSinkSkips(t *testing.T) {
	d := NewReceiptDispatcher(nil, nil, nil)
	order, items := sampleOrder()

	res := d.SendKitchenTicket(context.Background(), order, items)
	if res.Status != PrintStatusSkipped {
		t.Errorf("status: got %q", res.Status)
	}
	if res.Message != "printer not available, skipping print" {
		t.Errorf("message: got %q", res.Message)
	}
}

func TestReprint(t *testing.T) {
	order, items := sampleOrder()
	store := &mockReceiptStore{
		getOrderDetailFn: func(ctx context.Context, id uuid.UUID) (database.OrderDetailRow, error) {
			if id == order.ID {
				return order, nil
			}
			return database.OrderDetailRow{}, pgx.ErrNoRows
		},
		listOrderItemsByOrderFn: func(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error) {
			return items, nil
		},
	}
	sink := &recordingSink{}
	d := NewReceiptDispatcher(store, sink, time.UTC)

	res, err := d.Reprint(context.Background(), order.ID, printer.KindKitchenTicket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != printer.KindKitchenTicket || res.Status != PrintStatusPrinted {
		t.Errorf("unexpected result: %+v", res)
	}

	if _, err := d.Reprint(context.Background(), uuid.New(), printer.KindPaymentBill); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
