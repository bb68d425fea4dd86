package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Category struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description pgtype.Text `json:"description"`
	IsDeleted   bool        `json:"is_deleted"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type CookingComment struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Comment    string    `json:"comment"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DefaultSchedule struct {
	OpeningTime pgtype.Time `json:"opening_time"`
	ClosingTime pgtype.Time `json:"closing_time"`
}

type Item struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description pgtype.Text    `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Image       pgtype.Text    `json:"image"`
	Status      string         `json:"status"`
	IsDeleted   bool           `json:"is_deleted"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type Order struct {
	ID              uuid.UUID      `json:"id"`
	CustomerID      pgtype.UUID    `json:"customer_id"`
	TableID         pgtype.UUID    `json:"table_id"`
	WaiterID        pgtype.UUID    `json:"waiter_id"`
	Status          string         `json:"status"`
	OrderType       string         `json:"order_type"`
	TotalAmount     pgtype.Numeric `json:"total_amount"`
	DiscountPercent int32          `json:"discount_percent"`
	PaymentType     pgtype.Text    `json:"payment_type"`
	TransactionID   pgtype.Text    `json:"transaction_id"`
	ProofImage      pgtype.Text    `json:"proof_image"`
	IsDeleted       bool           `json:"is_deleted"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// OrderItem.Price is the line total (unit price * quantity), not the unit price.
type OrderItem struct {
	ID             uuid.UUID      `json:"id"`
	OrderID        uuid.UUID      `json:"order_id"`
	ItemID         uuid.UUID      `json:"item_id"`
	Quantity       int32          `json:"quantity"`
	Price          pgtype.Numeric `json:"price"`
	SpecialRequest pgtype.Text    `json:"special_request"`
	IsDeleted      bool           `json:"is_deleted"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type RestaurantTable struct {
	ID             uuid.UUID   `json:"id"`
	TableNumber    int32       `json:"table_number"`
	Capacity       int32       `json:"capacity"`
	Status         string      `json:"status"`
	AssignedWaiter pgtype.UUID `json:"assigned_waiter"`
	IsDeleted      bool        `json:"is_deleted"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type ScheduleOverride struct {
	ID          uuid.UUID   `json:"id"`
	Date        pgtype.Date `json:"date"`
	OpeningTime pgtype.Time `json:"opening_time"`
	ClosingTime pgtype.Time `json:"closing_time"`
	IsHoliday   bool        `json:"is_holiday"`
}

type User struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	HashedPassword string      `json:"hashed_password"`
	Role           string      `json:"role"`
	ProfileImage   pgtype.Text `json:"profile_image"`
	IsDeleted      bool        `json:"is_deleted"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
