package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/printer"
	"github.com/vold333/kitchen-order-ticket/internal/service"
	"github.com/vold333/kitchen-order-ticket/internal/ws"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (database.Order, error)
	AddLineItems(ctx context.Context, orderID uuid.UUID, items []service.LineItemInput) ([]database.OrderItem, error)
	FinalizeTotal(ctx context.Context, orderID uuid.UUID, discountPercent int32) (*service.FinalizeResult, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, req service.UpdateOrderRequest) (*service.UpdateOrderResult, error)
	SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) error
	UpdateLineItem(ctx context.Context, itemID uuid.UUID, upd service.LineItemUpdate) (database.OrderItem, error)
	DeleteLineItem(ctx context.Context, itemID uuid.UUID) error
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderDetail(ctx context.Context, id uuid.UUID) (database.OrderDetailRow, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.OrderDetailRow, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error)
}

// Reprinter is satisfied by *service.ReceiptDispatcher.
type Reprinter interface {
	Reprint(ctx context.Context, orderID uuid.UUID, kind string) (service.ReceiptResult, error)
}

// EventBroadcaster is satisfied by *ws.Hub.
type EventBroadcaster interface {
	BroadcastToRoom(room string, event ws.Event)
}

// OrderHandler handles order and line item endpoints.
type OrderHandler struct {
	svc      OrderServicer
	store    OrderStore
	receipts Reprinter
	events   EventBroadcaster
	loc      *time.Location
}

// NewOrderHandler creates a new OrderHandler. events may be nil. Date filters
// are read as calendar dates in loc.
func NewOrderHandler(svc OrderServicer, store OrderStore, receipts Reprinter, events EventBroadcaster, loc *time.Location) *OrderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderHandler{svc: svc, store: store, receipts: receipts, events: events, loc: loc}
}

// RegisterKioskRoutes registers the unauthenticated self-service flow.
// Kiosk orders are always takeaway and never discounted.
func (h *OrderHandler) RegisterKioskRoutes(r chi.Router) {
	r.Post("/kiosk/orders", h.CreateKiosk)
	r.Post("/kiosk/orders/{id}/items", h.kioskOnly(h.AddItems))
	r.Post("/kiosk/orders/{id}/finalize", h.kioskOnly(h.FinalizeKiosk))
}

// RegisterRoutes registers the staff order endpoints.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders", h.List)
	r.Get("/orders/{id}", h.Get)
	r.Put("/orders/{id}", h.Update)
	r.Post("/orders/{id}/items", h.AddItems)
	r.Get("/orders/{id}/items", h.ListItems)
	r.Post("/orders/{id}/finalize", h.Finalize)
	r.Post("/orders/{id}/print/kitchen", h.reprint(printer.KindKitchenTicket))
	r.Post("/orders/{id}/print/bill", h.reprint(printer.KindPaymentBill))
	r.Put("/order-items/{id}", h.UpdateItem)
	r.Delete("/order-items/{id}", h.DeleteItem)
}

// RegisterAdminRoutes registers order deletion.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Delete("/orders/{id}", h.Delete)
}

// --- Request / Response types ---

type createOrderRequest struct {
	OrderType     string `json:"order_type" validate:"required"`
	CustomerID    string `json:"customer_id" validate:"omitempty,uuid"`
	TableID       string `json:"table_id" validate:"omitempty,uuid"`
	WaiterID      string `json:"waiter_id" validate:"omitempty,uuid"`
	PaymentType   string `json:"payment_type"`
	TransactionID string `json:"transaction_id"`
	ProofImage    string `json:"proof_image"`
}

type updateOrderRequest struct {
	CustomerID    *string `json:"customer_id" validate:"omitempty,uuid"`
	TableID       *string `json:"table_id" validate:"omitempty,uuid"`
	WaiterID      *string `json:"waiter_id" validate:"omitempty,uuid"`
	Status        *string `json:"status"`
	PaymentType   *string `json:"payment_type"`
	TransactionID *string `json:"transaction_id"`
	ProofImage    *string `json:"proof_image"`
}

type addItemsRequest struct {
	Items []lineItemRequest `json:"items"`
}

// Price is the line total: unit price times quantity.
type lineItemRequest struct {
	ItemID         string `json:"item_id"`
	Quantity       int32  `json:"quantity"`
	Price          string `json:"price"`
	SpecialRequest string `json:"special_request"`
}

type updateOrderItemRequest struct {
	Quantity       int32  `json:"quantity" validate:"required,min=1"`
	Price          string `json:"price" validate:"required"`
	SpecialRequest string `json:"special_request"`
}

type finalizeRequest struct {
	DiscountPercent int32 `json:"discount_percent"`
}

type orderResponse struct {
	ID              uuid.UUID              `json:"id"`
	OrderType       string                 `json:"order_type"`
	Status          string                 `json:"status"`
	CustomerID      *uuid.UUID             `json:"customer_id"`
	CustomerName    *string                `json:"customer_name,omitempty"`
	CustomerPhone   *string                `json:"customer_phone,omitempty"`
	TableID         *uuid.UUID             `json:"table_id"`
	TableNumber     *int32                 `json:"table_number,omitempty"`
	WaiterID        *uuid.UUID             `json:"waiter_id"`
	WaiterName      *string                `json:"waiter_name,omitempty"`
	TotalAmount     string                 `json:"total_amount"`
	DiscountPercent int32                  `json:"discount_percent"`
	PaymentType     *string                `json:"payment_type"`
	TransactionID   *string                `json:"transaction_id"`
	ProofImage      *string                `json:"proof_image"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Items           []orderItemResponse    `json:"items,omitempty"`
	Receipt         *service.ReceiptResult `json:"receipt,omitempty"`
}

type orderItemResponse struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	ItemID         uuid.UUID `json:"item_id"`
	ItemName       string    `json:"item_name,omitempty"`
	Quantity       int32     `json:"quantity"`
	Price          string    `json:"price"`
	SpecialRequest *string   `json:"special_request"`
}

type totalsResponse struct {
	Subtotal        string `json:"subtotal"`
	GST             string `json:"gst"`
	BeforeDiscount  string `json:"before_discount"`
	DiscountPercent int32  `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`
	Total           string `json:"total"`
}

type finalizeResponse struct {
	Order   orderResponse         `json:"order"`
	Totals  totalsResponse        `json:"totals"`
	Receipt service.ReceiptResult `json:"receipt"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int32           `json:"limit"`
	Offset int32           `json:"offset"`
}

func uuidPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := uuid.UUID(id.Bytes)
	return &v
}

func toOrderResponse(o database.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		OrderType:       o.OrderType,
		Status:          o.Status,
		CustomerID:      uuidPtr(o.CustomerID),
		TableID:         uuidPtr(o.TableID),
		WaiterID:        uuidPtr(o.WaiterID),
		TotalAmount:     numericToString(o.TotalAmount),
		DiscountPercent: o.DiscountPercent,
		PaymentType:     textPtr(o.PaymentType),
		TransactionID:   textPtr(o.TransactionID),
		ProofImage:      textPtr(o.ProofImage),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderDetailResponse(o database.OrderDetailRow) orderResponse {
	resp := toOrderResponse(o.Order)
	resp.CustomerName = textPtr(o.CustomerName)
	resp.CustomerPhone = textPtr(o.CustomerPhone)
	resp.WaiterName = textPtr(o.WaiterName)
	if o.TableNumber.Valid {
		n := o.TableNumber.Int32
		resp.TableNumber = &n
	}
	return resp
}

func toOrderItemResponse(i database.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:             i.ID,
		OrderID:        i.OrderID,
		ItemID:         i.ItemID,
		Quantity:       i.Quantity,
		Price:          numericToString(i.Price),
		SpecialRequest: textPtr(i.SpecialRequest),
	}
}

func toOrderItemsResponse(rows []database.ListOrderItemsByOrderRow) []orderItemResponse {
	resp := make([]orderItemResponse, len(rows))
	for i, row := range rows {
		resp[i] = toOrderItemResponse(row.OrderItem)
		resp[i].ItemName = row.ItemName
	}
	return resp
}

func toTotalsResponse(t service.Totals) totalsResponse {
	return totalsResponse{
		Subtotal:        t.Subtotal.StringFixed(2),
		GST:             t.GST.StringFixed(2),
		BeforeDiscount:  t.BeforeDiscount.StringFixed(2),
		DiscountPercent: t.DiscountPercent,
		DiscountAmount:  t.DiscountAmount.StringFixed(2),
		Total:           t.Total.StringFixed(2),
	}
}

// --- Handlers ---

// Create places a dine-in or takeaway order for staff.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.create(w, r, req)
}

// CreateKiosk places a takeaway order from the self-service kiosk.
func (h *OrderHandler) CreateKiosk(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if req.OrderType == "" {
		req.OrderType = enum.OrderTypeTakeaway
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OrderType != enum.OrderTypeTakeaway {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kiosk orders must be takeaway"})
		return
	}
	h.create(w, r, req)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request, req createOrderRequest) {
	placement, err := service.NewPlacement(
		req.OrderType,
		parseOptionalUUID(req.WaiterID),
		parseOptionalUUID(req.TableID),
		service.Payment{
			Type:          req.PaymentType,
			TransactionID: req.TransactionID,
			ProofRef:      req.ProofImage,
		},
	)
	if err != nil {
		writeOrderError(w, "create order", err)
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		CustomerID: parseOptionalUUID(req.CustomerID),
		Placement:  placement,
	})
	if err != nil {
		writeOrderError(w, "create order", err)
		return
	}

	resp := toOrderResponse(order)
	h.publish(enum.EventOrderCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// List returns live orders with joined labels. Filters: ?status=, ?type=,
// ?start_date= and ?end_date= (YYYY-MM-DD, inclusive), ?limit=, ?offset=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	params := database.ListOrdersParams{Limit: limit, Offset: offset}

	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		if !enum.IsOrderStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}
	if s := q.Get("type"); s != "" {
		if s != enum.OrderTypeDineIn && s != enum.OrderTypeTakeaway {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid type"})
			return
		}
		params.OrderType = pgtype.Text{String: s, Valid: true}
	}
	if s := q.Get("start_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, h.loc)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date format, use YYYY-MM-DD"})
			return
		}
		params.StartDate = pgtype.Timestamptz{Time: t, Valid: true}
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, h.loc)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date format, use YYYY-MM-DD"})
			return
		}
		params.EndDate = pgtype.Timestamptz{Time: t.AddDate(0, 0, 1), Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list orders", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderDetailResponse(o)
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp, Limit: limit, Offset: offset})
}

// Get returns one order with its line items.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetOrderDetail(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeInternalError(w, "get order", err)
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), orderID)
	if err != nil {
		writeInternalError(w, "list order items", err)
		return
	}

	resp := toOrderDetailResponse(order)
	resp.Items = toOrderItemsResponse(items)
	writeJSON(w, http.StatusOK, resp)
}

// Update applies a partial update. Moving an order to served prints the
// payment bill; the print outcome is returned alongside the order.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateOrder(r.Context(), orderID, service.UpdateOrderRequest{
		CustomerID:    parseUUIDPtr(req.CustomerID),
		TableID:       parseUUIDPtr(req.TableID),
		WaiterID:      parseUUIDPtr(req.WaiterID),
		Status:        req.Status,
		PaymentType:   req.PaymentType,
		TransactionID: req.TransactionID,
		ProofRef:      req.ProofImage,
	})
	if err != nil {
		writeOrderError(w, "update order", err)
		return
	}

	resp := toOrderResponse(result.Order)
	resp.Receipt = result.Receipt
	h.publish(enum.EventOrderUpdated, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Delete soft-deletes an order. Line items are left untouched.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.SoftDeleteOrder(r.Context(), orderID); err != nil {
		writeOrderError(w, "delete order", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItems inserts a batch of line items. The whole batch is rejected if
// any entry is invalid.
func (h *OrderHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req addItemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inputs := make([]service.LineItemInput, len(req.Items))
	for i, item := range req.Items {
		var itemID uuid.UUID
		if item.ItemID != "" {
			id, err := uuid.Parse(item.ItemID)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("items[%d]: invalid item_id", i)})
				return
			}
			itemID = id
		}
		inputs[i] = service.LineItemInput{
			ItemID:         itemID,
			Quantity:       item.Quantity,
			Price:          item.Price,
			SpecialRequest: item.SpecialRequest,
		}
	}

	created, err := h.svc.AddLineItems(r.Context(), orderID, inputs)
	if err != nil {
		writeOrderError(w, "add order items", err)
		return
	}

	resp := make([]orderItemResponse, len(created))
	for i, item := range created {
		resp[i] = toOrderItemResponse(item)
	}
	h.publish(enum.EventOrderItemsAdded, map[string]interface{}{"order_id": orderID, "items": resp})
	writeJSON(w, http.StatusCreated, resp)
}

// ListItems returns the live line items of a live order.
func (h *OrderHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	if _, err := h.store.GetOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeInternalError(w, "get order", err)
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), orderID)
	if err != nil {
		writeInternalError(w, "list order items", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderItemsResponse(items))
}

// Finalize computes and stores the total, then prints the kitchen ticket.
func (h *OrderHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.finalize(w, r, req.DiscountPercent)
}

// FinalizeKiosk is Finalize for self-service orders. Only staff may grant a
// discount, so any non-zero discount_percent is refused.
func (h *OrderHandler) FinalizeKiosk(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DiscountPercent != 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "discounts are not available for kiosk orders"})
		return
	}
	h.finalize(w, r, 0)
}

func (h *OrderHandler) finalize(w http.ResponseWriter, r *http.Request, discountPercent int32) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.svc.FinalizeTotal(r.Context(), orderID, discountPercent)
	if err != nil {
		writeOrderError(w, "finalize order", err)
		return
	}

	order := toOrderResponse(result.Order)
	order.Items = toOrderItemsResponse(result.Items)
	h.publish(enum.EventOrderFinalized, order)
	writeJSON(w, http.StatusOK, finalizeResponse{
		Order:   order,
		Totals:  toTotalsResponse(result.Totals),
		Receipt: result.Receipt,
	})
}

// UpdateItem replaces a line item's quantity, line price and special request.
// The order's stored total follows the change.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := orderItemIDParam(w, r)
	if !ok {
		return
	}

	var req updateOrderItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.svc.UpdateLineItem(r.Context(), itemID, service.LineItemUpdate{
		Quantity:       req.Quantity,
		Price:          req.Price,
		SpecialRequest: req.SpecialRequest,
	})
	if err != nil {
		writeOrderError(w, "update order item", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderItemResponse(item))
}

// DeleteItem soft-deletes a line item of a non-terminal order.
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := orderItemIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteLineItem(r.Context(), itemID); err != nil {
		writeOrderError(w, "delete order item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// reprint returns a handler that prints one receipt kind again. The print
// outcome is always reported with 200.
func (h *OrderHandler) reprint(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, ok := orderIDParam(w, r)
		if !ok {
			return
		}

		result, err := h.receipts.Reprint(r.Context(), orderID, kind)
		if err != nil {
			writeOrderError(w, "reprint "+kind, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// --- Helpers ---

// kioskOnly restricts a handler to live takeaway orders. Anything else is
// reported as not found so the kiosk cannot probe dine-in orders.
func (h *OrderHandler) kioskOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, ok := orderIDParam(w, r)
		if !ok {
			return
		}
		order, err := h.store.GetOrder(r.Context(), orderID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			writeInternalError(w, "get order", err)
			return
		}
		if err != nil || order.OrderType != enum.OrderTypeTakeaway {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		next(w, r)
	}
}

func (h *OrderHandler) publish(eventType string, payload interface{}) {
	if h.events == nil {
		return
	}
	event, err := ws.NewEvent(eventType, payload)
	if err != nil {
		log.Printf("WARN: encode %s event: %v", eventType, err)
		return
	}
	h.events.BroadcastToRoom(enum.RoomKitchen, event)
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return uuid.Nil, false
	}
	return id, true
}

func orderItemIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order item ID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID expects s to be empty or already validated by a uuid tag.
func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	return parseOptionalUUID(*s)
}

// writeOrderError maps order lifecycle errors to HTTP statuses.
func writeOrderError(w http.ResponseWriter, op string, err error) {
	var closed *service.ScheduleClosedError
	switch {
	case errors.As(err, &closed):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": closed.Reason})
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrOrderItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrTerminalStatus):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNoChanges), service.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeInternalError(w, op, err)
	}
}
