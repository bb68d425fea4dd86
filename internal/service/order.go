package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed by the order lifecycle.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetActiveUser(ctx context.Context, id uuid.UUID) (database.User, error)
	GetActiveTable(ctx context.Context, id uuid.UUID) (database.RestaurantTable, error)
	GetActiveCustomer(ctx context.Context, id uuid.UUID) (database.Customer, error)
	GetVisibleItem(ctx context.Context, id uuid.UUID) (database.Item, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderDetail(ctx context.Context, id uuid.UUID) (database.OrderDetailRow, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	UpdateOrderTotal(ctx context.Context, arg database.UpdateOrderTotalParams) (database.Order, error)
	SoftDeleteOrder(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	GetOrderItem(ctx context.Context, id uuid.UUID) (database.OrderItem, error)
	UpdateOrderItem(ctx context.Context, arg database.UpdateOrderItemParams) (database.OrderItem, error)
	SoftDeleteOrderItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// OrderGate is satisfied by *ScheduleGate.
type OrderGate interface {
	CanTakeOrders(ctx context.Context) (Decision, error)
}

// ReceiptSender is satisfied by *ReceiptDispatcher.
type ReceiptSender interface {
	SendKitchenTicket(ctx context.Context, order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) ReceiptResult
	SendPaymentBill(ctx context.Context, order database.OrderDetailRow, items []database.ListOrderItemsByOrderRow) ReceiptResult
}

// Placement says how an order is served. It is either DineIn or Takeaway.
type Placement interface {
	orderType() string
}

// DineIn orders are tied to a waiter and usually a table.
type DineIn struct {
	WaiterID uuid.UUID
	TableID  *uuid.UUID
}

func (DineIn) orderType() string { return enum.OrderTypeDineIn }

// Takeaway orders are settled up front with an explicit payment.
type Takeaway struct {
	WaiterID *uuid.UUID
	Payment  Payment
}

func (Takeaway) orderType() string { return enum.OrderTypeTakeaway }

// Payment is how an order is settled. TransactionID and ProofRef belong to qr only.
type Payment struct {
	Type          string
	TransactionID string
	ProofRef      string
}

// NewPlacement turns loosely typed request fields into a Placement.
func NewPlacement(orderType string, waiterID, tableID *uuid.UUID, payment Payment) (Placement, error) {
	switch orderType {
	case enum.OrderTypeDineIn:
		if waiterID == nil || *waiterID == uuid.Nil {
			return nil, ErrWaiterRequired
		}
		return DineIn{WaiterID: *waiterID, TableID: tableID}, nil
	case enum.OrderTypeTakeaway:
		if tableID != nil {
			return nil, ErrTableNotAllowed
		}
		return Takeaway{WaiterID: waiterID, Payment: payment}, nil
	}
	return nil, ErrInvalidOrderType
}

// CreateOrderRequest is the input for creating an order.
type CreateOrderRequest struct {
	CustomerID *uuid.UUID
	Placement  Placement
}

// LineItemInput is one line to add to an order. Price is the line total
// (unit price multiplied by quantity), not the unit price.
type LineItemInput struct {
	ItemID         uuid.UUID
	Quantity       int32
	Price          string
	SpecialRequest string
}

// LineItemUpdate replaces the editable fields of one line. Price is the line total.
type LineItemUpdate struct {
	Quantity       int32
	Price          string
	SpecialRequest string
}

// UpdateOrderRequest is a partial update; nil fields are left unchanged.
type UpdateOrderRequest struct {
	CustomerID    *uuid.UUID
	TableID       *uuid.UUID
	WaiterID      *uuid.UUID
	Status        *string
	PaymentType   *string
	TransactionID *string
	ProofRef      *string
}

// UpdateOrderResult is the updated order and, when it was just served, the
// payment bill outcome.
type UpdateOrderResult struct {
	Order   database.Order
	Receipt *ReceiptResult
}

// FinalizeResult is the order with its stored total, the breakdown and the
// kitchen ticket outcome.
type FinalizeResult struct {
	Order   database.Order
	Items   []database.ListOrderItemsByOrderRow
	Totals  Totals
	Receipt ReceiptResult
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	store    OrderStore
	newStore NewOrderStore
	gate     OrderGate
	receipts ReceiptSender
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, store OrderStore, newStore NewOrderStore, gate OrderGate, receipts ReceiptSender) *OrderService {
	return &OrderService{pool: pool, store: store, newStore: newStore, gate: gate, receipts: receipts}
}

// CreateOrder checks the schedule gate, validates the placement and payment
// rules, and inserts a pending order with a zero total. The total is set
// later by FinalizeTotal once line items are known.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (database.Order, error) {
	decision, err := s.gate.CanTakeOrders(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("check schedule: %w", err)
	}
	if !decision.Allowed {
		return database.Order{}, &ScheduleClosedError{Reason: decision.Reason}
	}

	if req.Placement == nil {
		return database.Order{}, ErrInvalidOrderType
	}

	params := database.CreateOrderParams{
		Status:      enum.OrderStatusPending,
		OrderType:   req.Placement.orderType(),
		TotalAmount: decimalToNumeric(decimal.Zero),
	}

	switch p := req.Placement.(type) {
	case DineIn:
		if p.WaiterID == uuid.Nil {
			return database.Order{}, ErrWaiterRequired
		}
		if err := s.checkWaiter(ctx, s.store, p.WaiterID); err != nil {
			return database.Order{}, err
		}
		params.WaiterID = toPgUUID(&p.WaiterID)
		if p.TableID != nil {
			if err := s.checkTable(ctx, s.store, *p.TableID); err != nil {
				return database.Order{}, err
			}
			params.TableID = toPgUUID(p.TableID)
		}
	case Takeaway:
		if err := validatePayment(p.Payment); err != nil {
			return database.Order{}, err
		}
		if p.WaiterID != nil {
			if err := s.checkWaiter(ctx, s.store, *p.WaiterID); err != nil {
				return database.Order{}, err
			}
			params.WaiterID = toPgUUID(p.WaiterID)
		}
		params.PaymentType = toPgText(p.Payment.Type)
		params.TransactionID = toPgText(p.Payment.TransactionID)
		params.ProofImage = toPgText(p.Payment.ProofRef)
	default:
		return database.Order{}, ErrInvalidOrderType
	}

	if req.CustomerID != nil {
		if err := s.checkCustomer(ctx, s.store, *req.CustomerID); err != nil {
			return database.Order{}, err
		}
		params.CustomerID = toPgUUID(req.CustomerID)
	}

	order, err := s.store.CreateOrder(ctx, params)
	if err != nil {
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// AddLineItems validates every line, then inserts them all and updates the
// stored total in one transaction. Either every line is stored or none is.
func (s *OrderService) AddLineItems(ctx context.Context, orderID uuid.UUID, items []LineItemInput) ([]database.OrderItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	params := make([]database.CreateOrderItemParams, len(items))
	for i, it := range items {
		if it.ItemID == uuid.Nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrItemRequired)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		if it.Price == "" {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrPriceRequired)
		}
		price, err := decimal.NewFromString(it.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidPrice)
		}
		params[i] = database.CreateOrderItemParams{
			OrderID:        orderID,
			ItemID:         it.ItemID,
			Quantity:       it.Quantity,
			Price:          decimalToNumeric(price),
			SpecialRequest: toPgText(it.SpecialRequest),
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if enum.IsTerminalOrderStatus(order.Status) {
		return nil, ErrTerminalStatus
	}

	created := make([]database.OrderItem, 0, len(params))
	for i, p := range params {
		item, err := store.GetVisibleItem(ctx, p.ItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrItemNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get item: %w", i, err)
		}
		if item.Status != enum.ItemStatusAvailable {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrItemNotFound)
		}
		oi, err := store.CreateOrderItem(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: create order item: %w", i, err)
		}
		created = append(created, oi)
	}

	if _, err := refreshTotal(ctx, store, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

// UpdateLineItem replaces one line of a non-terminal order and restores the
// stored total in the same transaction.
func (s *OrderService) UpdateLineItem(ctx context.Context, itemID uuid.UUID, upd LineItemUpdate) (database.OrderItem, error) {
	if upd.Quantity < 1 {
		return database.OrderItem{}, ErrInvalidQuantity
	}
	if upd.Price == "" {
		return database.OrderItem{}, ErrPriceRequired
	}
	price, err := decimal.NewFromString(upd.Price)
	if err != nil || price.IsNegative() {
		return database.OrderItem{}, ErrInvalidPrice
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.OrderItem{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := editableOrder(ctx, store, itemID)
	if err != nil {
		return database.OrderItem{}, err
	}

	item, err := store.UpdateOrderItem(ctx, database.UpdateOrderItemParams{
		ID:             itemID,
		Quantity:       upd.Quantity,
		Price:          decimalToNumeric(price),
		SpecialRequest: toPgText(upd.SpecialRequest),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.OrderItem{}, ErrOrderItemNotFound
		}
		return database.OrderItem{}, fmt.Errorf("update order item: %w", err)
	}

	if _, err := refreshTotal(ctx, store, order); err != nil {
		return database.OrderItem{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return database.OrderItem{}, fmt.Errorf("commit tx: %w", err)
	}
	return item, nil
}

// DeleteLineItem soft-deletes one line of a non-terminal order and restores
// the stored total in the same transaction.
func (s *OrderService) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := editableOrder(ctx, store, itemID)
	if err != nil {
		return err
	}

	if _, err := store.SoftDeleteOrderItem(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderItemNotFound
		}
		return fmt.Errorf("soft delete order item: %w", err)
	}

	if _, err := refreshTotal(ctx, store, order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// FinalizeTotal computes and stores the order total over its live line
// items, then sends the kitchen ticket. A print failure is reported in the
// result and never fails the call.
func (s *OrderService) FinalizeTotal(ctx context.Context, orderID uuid.UUID, discountPercent int32) (*FinalizeResult, error) {
	if discountPercent < 0 || discountPercent > MaxDiscountPercent {
		return nil, ErrInvalidDiscount
	}

	detail, err := s.store.GetOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if enum.IsTerminalOrderStatus(detail.Status) {
		return nil, ErrTerminalStatus
	}

	items, err := s.store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	totals, err := ComputeTotals(linePrices(items), discountPercent)
	if err != nil {
		return nil, err
	}

	order, err := s.store.UpdateOrderTotal(ctx, database.UpdateOrderTotalParams{
		ID:              orderID,
		TotalAmount:     decimalToNumeric(totals.Total),
		DiscountPercent: discountPercent,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order total: %w", err)
	}

	detail.Order = order
	receipt := s.receipts.SendKitchenTicket(ctx, detail, items)

	return &FinalizeResult{
		Order:   order,
		Items:   items,
		Totals:  totals,
		Receipt: receipt,
	}, nil
}

// UpdateOrder merges req into the stored order. It re-validates the waiter
// and the payment rules on the merged state, keeps an existing proof when
// none is supplied, and refuses status changes on served or cancelled
// orders. Moving an order to served sends the payment bill.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*UpdateOrderResult, error) {
	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	next := database.UpdateOrderParams{
		ID:            current.ID,
		CustomerID:    current.CustomerID,
		TableID:       current.TableID,
		WaiterID:      current.WaiterID,
		Status:        current.Status,
		PaymentType:   current.PaymentType,
		TransactionID: current.TransactionID,
		ProofImage:    current.ProofImage,
	}

	if req.Status != nil {
		if !enum.IsOrderStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		if *req.Status != current.Status && enum.IsTerminalOrderStatus(current.Status) {
			return nil, ErrTerminalStatus
		}
		next.Status = *req.Status
	}

	if req.WaiterID != nil {
		if err := s.checkWaiter(ctx, s.store, *req.WaiterID); err != nil {
			return nil, err
		}
		next.WaiterID = toPgUUID(req.WaiterID)
	}

	if req.TableID != nil {
		if current.OrderType != enum.OrderTypeDineIn {
			return nil, ErrTableNotAllowed
		}
		if err := s.checkTable(ctx, s.store, *req.TableID); err != nil {
			return nil, err
		}
		next.TableID = toPgUUID(req.TableID)
	}

	if req.CustomerID != nil {
		if err := s.checkCustomer(ctx, s.store, *req.CustomerID); err != nil {
			return nil, err
		}
		next.CustomerID = toPgUUID(req.CustomerID)
	}

	if err := mergePayment(&next, current, req); err != nil {
		return nil, err
	}

	if next == currentParams(current) {
		return nil, ErrNoChanges
	}

	updated, err := s.store.UpdateOrder(ctx, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	result := &UpdateOrderResult{Order: updated}
	if updated.Status == enum.OrderStatusServed && current.Status != enum.OrderStatusServed {
		receipt := s.sendBill(ctx, updated)
		result.Receipt = &receipt
	}
	return result, nil
}

// SoftDeleteOrder hides the order. Its line items are left untouched.
func (s *OrderService) SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.store.SoftDeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("soft delete order: %w", err)
	}
	return nil
}

// sendBill loads what the bill needs. The order is already updated, so a
// load failure becomes a failed receipt instead of an error.
func (s *OrderService) sendBill(ctx context.Context, order database.Order) ReceiptResult {
	failed := ReceiptResult{Kind: enum.ReceiptPaymentBill, Status: PrintStatusFailed, Message: "printing failed"}

	detail, err := s.store.GetOrderDetail(ctx, order.ID)
	if err != nil {
		log.Printf("WARN: load order %s for payment bill: %v", order.ID, err)
		return failed
	}
	items, err := s.store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		log.Printf("WARN: load items of order %s for payment bill: %v", order.ID, err)
		return failed
	}
	return s.receipts.SendPaymentBill(ctx, detail, items)
}

// editableOrder loads the live order owning a live line item and refuses
// served or cancelled orders.
func editableOrder(ctx context.Context, store OrderStore, itemID uuid.UUID) (database.Order, error) {
	item, err := store.GetOrderItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderItemNotFound
		}
		return database.Order{}, fmt.Errorf("get order item: %w", err)
	}
	order, err := store.GetOrder(ctx, item.OrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	if enum.IsTerminalOrderStatus(order.Status) {
		return database.Order{}, ErrTerminalStatus
	}
	return order, nil
}

// refreshTotal stores the total of the order's live lines under its current
// discount. Every line change calls it so the stored total never goes stale.
func refreshTotal(ctx context.Context, store OrderStore, order database.Order) (database.Order, error) {
	items, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return database.Order{}, fmt.Errorf("list order items: %w", err)
	}
	totals, err := ComputeTotals(linePrices(items), order.DiscountPercent)
	if err != nil {
		return database.Order{}, err
	}
	updated, err := store.UpdateOrderTotal(ctx, database.UpdateOrderTotalParams{
		ID:              order.ID,
		TotalAmount:     decimalToNumeric(totals.Total),
		DiscountPercent: order.DiscountPercent,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("update order total: %w", err)
	}
	return updated, nil
}

func linePrices(items []database.ListOrderItemsByOrderRow) []decimal.Decimal {
	prices := make([]decimal.Decimal, len(items))
	for i, it := range items {
		prices[i] = numericToDecimal(it.Price)
	}
	return prices
}

func (s *OrderService) checkWaiter(ctx context.Context, store OrderStore, id uuid.UUID) error {
	user, err := store.GetActiveUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidWaiter
		}
		return fmt.Errorf("get waiter: %w", err)
	}
	if user.Role != enum.UserRoleWaiter {
		return ErrInvalidWaiter
	}
	return nil
}

func (s *OrderService) checkTable(ctx context.Context, store OrderStore, id uuid.UUID) error {
	if _, err := store.GetActiveTable(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidTable
		}
		return fmt.Errorf("get table: %w", err)
	}
	return nil
}

func (s *OrderService) checkCustomer(ctx context.Context, store OrderStore, id uuid.UUID) error {
	if _, err := store.GetActiveCustomer(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidCustomer
		}
		return fmt.Errorf("get customer: %w", err)
	}
	return nil
}

// validatePayment enforces: a payment type is present and known; qr needs
// both a transaction id and a proof; any other type carries neither.
func validatePayment(p Payment) error {
	if p.Type == "" {
		return ErrPaymentTypeRequired
	}
	if !enum.IsPaymentType(p.Type) {
		return ErrInvalidPaymentType
	}
	if p.Type == enum.PaymentTypeQR {
		if p.TransactionID == "" || p.ProofRef == "" {
			return ErrQRDetailsRequired
		}
		return nil
	}
	if p.TransactionID != "" || p.ProofRef != "" {
		return ErrQRDetailsNotAllowed
	}
	return nil
}

// mergePayment applies the payment fields of req onto next. A proof that is
// not resupplied is kept from the stored order.
func mergePayment(next *database.UpdateOrderParams, current database.Order, req UpdateOrderRequest) error {
	if req.PaymentType == nil && req.TransactionID == nil && req.ProofRef == nil {
		return nil
	}

	paymentType := current.PaymentType.String
	if req.PaymentType != nil {
		paymentType = *req.PaymentType
	}
	if paymentType == "" {
		if current.OrderType == enum.OrderTypeTakeaway {
			return ErrPaymentTypeRequired
		}
		if isSet(req.TransactionID) || isSet(req.ProofRef) {
			return ErrQRDetailsNotAllowed
		}
		return nil
	}

	p := Payment{Type: paymentType}
	if paymentType == enum.PaymentTypeQR {
		p.TransactionID = current.TransactionID.String
		p.ProofRef = current.ProofImage.String
		if req.TransactionID != nil {
			p.TransactionID = *req.TransactionID
		}
		if req.ProofRef != nil && *req.ProofRef != "" {
			p.ProofRef = *req.ProofRef
		}
	} else {
		if isSet(req.TransactionID) || isSet(req.ProofRef) {
			return ErrQRDetailsNotAllowed
		}
	}

	if err := validatePayment(p); err != nil {
		return err
	}
	next.PaymentType = toPgText(p.Type)
	next.TransactionID = toPgText(p.TransactionID)
	next.ProofImage = toPgText(p.ProofRef)
	return nil
}

func currentParams(o database.Order) database.UpdateOrderParams {
	return database.UpdateOrderParams{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		TableID:       o.TableID,
		WaiterID:      o.WaiterID,
		Status:        o.Status,
		PaymentType:   o.PaymentType,
		TransactionID: o.TransactionID,
		ProofImage:    o.ProofImage,
	}
}

func isSet(s *string) bool {
	return s != nil && *s != ""
}

func toPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
