package enum

// ── Group A: State machines (CHECK constrained in DB) ──

// in_progress and ready are accepted values but no workflow drives an order into them yet.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "ready"
	OrderStatusServed     = "served"
	OrderStatusCancelled  = "cancelled"
)

const (
	TableStatusAvailable = "available"
	TableStatusReserved  = "reserved"
	TableStatusOccupied  = "occupied"
)

const (
	ItemStatusAvailable   = "available"
	ItemStatusUnavailable = "unavailable"
)

// ── Group C: Borderline (CHECK constrained in DB) ──

const (
	UserRoleAdmin        = "admin"
	UserRoleWaiter       = "waiter"
	UserRoleReceptionist = "receptionist"
	UserRoleKitchen      = "kitchen"
	UserRoleCustomer     = "customer"
)

// StaffRoles are the roles that work the floor. Customer accounts are excluded.
var StaffRoles = []string{UserRoleAdmin, UserRoleWaiter, UserRoleReceptionist, UserRoleKitchen}

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
)

const (
	PaymentTypeCash = "cash"
	PaymentTypeCard = "card"
	PaymentTypeQR   = "qr"
	PaymentTypeFOC  = "foc"
)

// ── Group B: Configurable labels (no DB constraint) ──

const (
	RoomKitchen = "kitchen"
	RoomCashier = "cashier"
)

// Websocket event types sent to the kitchen room.
const (
	EventOrderCreated    = "order.created"
	EventOrderUpdated    = "order.updated"
	EventOrderItemsAdded = "order.items_added"
	EventOrderFinalized  = "order.finalized"
)

const (
	ReceiptKitchenTicket = "kitchen_ticket"
	ReceiptPaymentBill   = "payment_bill"
)

func IsOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReady,
		OrderStatusServed, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminalOrderStatus reports whether an order in status s can no longer change status.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusServed || s == OrderStatusCancelled
}

func IsPaymentType(s string) bool {
	switch s {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeQR, PaymentTypeFOC:
		return true
	}
	return false
}

func IsTableStatus(s string) bool {
	switch s {
	case TableStatusAvailable, TableStatusReserved, TableStatusOccupied:
		return true
	}
	return false
}

func IsItemStatus(s string) bool {
	return s == ItemStatusAvailable || s == ItemStatusUnavailable
}

// IsStaffRole reports whether an admin may create a user with role s.
func IsStaffRole(s string) bool {
	switch s {
	case UserRoleAdmin, UserRoleWaiter, UserRoleReceptionist, UserRoleKitchen:
		return true
	}
	return false
}
