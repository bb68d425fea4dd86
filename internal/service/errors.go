package service

import "errors"

// Validation errors returned by the order lifecycle. Reported to the caller as 400.
var (
	ErrInvalidOrderType     = errors.New("order_type must be dine_in or takeaway")
	ErrWaiterRequired       = errors.New("waiter_id is required for dine_in orders")
	ErrInvalidWaiter        = errors.New("waiter_id must reference an active user with role waiter")
	ErrInvalidTable         = errors.New("table_id must reference an active table")
	ErrTableNotAllowed      = errors.New("table_id is only allowed for dine_in orders")
	ErrInvalidCustomer      = errors.New("customer_id must reference an active customer")
	ErrPaymentTypeRequired  = errors.New("payment_type is required for takeaway orders")
	ErrInvalidPaymentType   = errors.New("payment_type must be one of cash, card, qr, foc")
	ErrQRDetailsRequired    = errors.New("transaction_id and proof are required for qr payments")
	ErrQRDetailsNotAllowed  = errors.New("transaction_id and proof are only allowed for qr payments")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidDiscount      = errors.New("discount_percent must be between 0 and 15")
	ErrEmptyItems           = errors.New("items are required")
	ErrItemRequired         = errors.New("item_id is required")
	ErrInvalidQuantity      = errors.New("quantity must be >= 1")
	ErrPriceRequired        = errors.New("price is required")
	ErrInvalidPrice         = errors.New("price must be a non-negative amount")
	ErrItemNotFound         = errors.New("item_id must reference an available menu item")
	ErrNoChanges            = errors.New("order exists but no changes were made")
	ErrInvalidScheduleTimes = errors.New("opening_time must be before closing_time")
)

// ErrOrderNotFound is returned when the order is absent or soft-deleted.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderItemNotFound is returned when the line item is absent or soft-deleted.
var ErrOrderItemNotFound = errors.New("order item not found")

// ErrTerminalStatus is returned when changing the status of a served or cancelled order.
var ErrTerminalStatus = errors.New("order status can no longer be changed")

// ErrScheduleClosed matches any ScheduleClosedError via errors.Is.
var ErrScheduleClosed = errors.New("restaurant is not taking orders")

// ScheduleClosedError carries the gate's reason for refusing a new order.
type ScheduleClosedError struct {
	Reason string
}

func (e *ScheduleClosedError) Error() string { return e.Reason }

func (e *ScheduleClosedError) Is(target error) bool { return target == ErrScheduleClosed }

// IsValidation reports whether err is a caller input error.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var validationErrors = []error{
	ErrInvalidOrderType,
	ErrWaiterRequired,
	ErrInvalidWaiter,
	ErrInvalidTable,
	ErrTableNotAllowed,
	ErrInvalidCustomer,
	ErrPaymentTypeRequired,
	ErrInvalidPaymentType,
	ErrQRDetailsRequired,
	ErrQRDetailsNotAllowed,
	ErrInvalidStatus,
	ErrInvalidDiscount,
	ErrEmptyItems,
	ErrItemRequired,
	ErrInvalidQuantity,
	ErrPriceRequired,
	ErrInvalidPrice,
	ErrItemNotFound,
	ErrInvalidScheduleTimes,
}
