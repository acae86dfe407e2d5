package models

import "time"

// Payment status is an independent axis from fulfillment status: an order
// can be DELIVERED while still PENDING payment (cash on delivery).
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

const (
	PaymentMethodCash   = "CASH"
	PaymentMethodOnline = "ONLINE"
	PaymentMethodCard   = "CARD"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type Order struct {
	ID                int64       `json:"id"`
	OrderNumber       string      `json:"order_number"`
	UserID            *int64      `json:"user_id,omitempty"`
	GuestName         *string     `json:"guest_name,omitempty"`
	GuestPhone        *string     `json:"guest_phone,omitempty"`
	AddressID         int64       `json:"address_id"`
	TotalAmount       float64     `json:"total_amount"`
	PaymentMethod     string      `json:"payment_method"`
	PaymentStatus     string      `json:"payment_status"`
	RazorpayOrderID   *string     `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string     `json:"razorpay_payment_id,omitempty"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	Items             []OrderItem `json:"items,omitempty"`
	StatusLogs        []StatusLog `json:"status_logs,omitempty"`
	Address           *Address    `json:"address,omitempty"`
}

// OrderItem snapshots the menu item at order time. Title and unit price are
// denormalized so historical orders stay readable after menu edits.
type OrderItem struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	SKU        string    `json:"sku"`
	Title      string    `json:"title"`
	Quantity   int       `json:"qty"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusLog rows are append-only; together they form the order's audit trail.
type StatusLog struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Address struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Label     string    `json:"label"`
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	Address       AddressRequest     `json:"address"`
	GuestName     string             `json:"guest_name,omitempty"`
	GuestPhone    string             `json:"guest_phone,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
}

type OrderItemRequest struct {
	SKU      string  `json:"id"`
	Title    string  `json:"title"`
	Quantity int     `json:"qty"`
	Price    float64 `json:"price"`
}

type AddressRequest struct {
	Label   string `json:"label,omitempty"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

type TransitionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// DashboardStats powers the staff dashboard. Cancelled orders are excluded
// from revenue and popularity, not from the order counts.
type DashboardStats struct {
	TotalOrders   int           `json:"total_orders"`
	PendingOrders int           `json:"pending_orders"`
	TodayOrders   int           `json:"today_orders"`
	TodayRevenue  float64       `json:"today_revenue"`
	PopularItems  []PopularItem `json:"popular_items"`
}

type PopularItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"qty"`
}

type OrderList struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
