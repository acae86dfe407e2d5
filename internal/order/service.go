package order

import (
	"context"
	"fmt"

	"justfood/pkg/logger"
	"justfood/pkg/models"
)

// Repository is the engine's persistence boundary. Transition must perform
// the check-then-write atomically (row lock or equivalent) so concurrent
// requests on the same order cannot both observe a stale current status, and
// must return the snapshot as of that write, not a later re-read.
type Repository interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	Transition(ctx context.Context, orderNumber string, target Status, note string) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Order, int, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error)
	AttachGatewayOrder(ctx context.Context, orderNumber, gatewayOrderID string) error
	MarkPaid(ctx context.Context, orderNumber, paymentID string) (*models.Order, error)
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// Fanout receives order snapshots after they are durably persisted.
// Delivery is best-effort; errors are logged and discarded by the service.
type Fanout interface {
	PublishNewOrder(order *models.Order) error
	PublishStatusChange(order *models.Order) error
}

type CreateOrderParams struct {
	OrderNumber   string
	UserID        *int64
	GuestName     *string
	GuestPhone    *string
	Address       models.AddressRequest
	PaymentMethod string
	TotalAmount   float64
	Items         []models.OrderItem
}

// Service is the single authority for creating orders and mutating their
// fulfillment status. Nothing else writes orders.status or appends to the
// status log.
type Service struct {
	repo  Repository
	fan   Fanout
	mylog *logger.Logger
}

func NewService(repo Repository, fan Fanout, mylog *logger.Logger) *Service {
	return &Service{
		repo:  repo,
		fan:   fan,
		mylog: mylog,
	}
}

// Create persists the order, its line items and the initial PENDING log
// entry as one atomic unit, then announces it on the admin channel.
func (s *Service) Create(ctx context.Context, req models.CreateOrderRequest, userID *int64) (*models.Order, error) {
	if err := s.validateCreate(req, userID); err != nil {
		return nil, err
	}

	params := CreateOrderParams{
		OrderNumber:   NewOrderNumber(),
		UserID:        userID,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}
	if params.PaymentMethod == "" {
		params.PaymentMethod = models.PaymentMethodCash
	}
	if userID == nil {
		guestName, guestPhone := req.GuestName, req.GuestPhone
		params.GuestName = &guestName
		params.GuestPhone = &guestPhone
	}

	total := 0.0
	for _, item := range req.Items {
		itemTotal := float64(item.Quantity) * item.Price
		total += itemTotal
		params.Items = append(params.Items, models.OrderItem{
			SKU:        item.SKU,
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: itemTotal,
		})
	}
	params.TotalAmount = total

	newOrder, err := s.repo.CreateOrder(ctx, params)
	if err != nil {
		s.mylog.Error("", "order_create_failed", "Failed to save order", err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.fan.PublishNewOrder(newOrder); err != nil {
		s.mylog.Error("", "fanout_failed", "Failed to announce new order "+newOrder.OrderNumber, err)
	}

	s.mylog.Info("", "order_created", "Order "+newOrder.OrderNumber+" created")
	return newOrder, nil
}

// Transition validates the target status and applies it atomically with its
// log entry. Fan-out runs after commit and never affects the result.
func (s *Service) Transition(ctx context.Context, orderNumber, target, note string) (*models.Order, error) {
	targetStatus, err := ParseStatus(target)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Transition(ctx, orderNumber, targetStatus, note)
	if err != nil {
		return nil, err
	}

	if err := s.fan.PublishStatusChange(updated); err != nil {
		s.mylog.Error("", "fanout_failed", "Failed to broadcast status change for order "+orderNumber, err)
	}

	s.mylog.Info("", "status_changed",
		fmt.Sprintf("Order %s moved to %s", orderNumber, targetStatus))
	return updated, nil
}

// GetByNumber returns the order with its full status history. Realtime
// clients call this on (re)connect to resync: the event stream alone is
// never authoritative for initial state.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.repo.GetByNumber(ctx, orderNumber)
}

func (s *Service) ListByUser(ctx context.Context, userID int64, page, limit int) (*models.OrderList, error) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return paginated(orders, page, limit, total), nil
}

func (s *Service) List(ctx context.Context, status string, page, limit int) (*models.OrderList, error) {
	if status != "" {
		if _, err := ParseStatus(status); err != nil {
			return nil, err
		}
	}
	page, limit = normalizePage(page, limit)
	orders, total, err := s.repo.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return paginated(orders, page, limit, total), nil
}

// AttachGatewayOrder records the payment-gateway handle created for an order.
func (s *Service) AttachGatewayOrder(ctx context.Context, orderNumber, gatewayOrderID string) error {
	return s.repo.AttachGatewayOrder(ctx, orderNumber, gatewayOrderID)
}

// ConfirmPayment marks the order paid. The gateway order must be the one
// previously attached to this order number: a signature is only proof of
// payment for its own gateway order, so accepting it against any other order
// would let one paid order mark arbitrary orders paid. Payment does not
// touch fulfillment status.
func (s *Service) ConfirmPayment(ctx context.Context, orderNumber, gatewayOrderID, paymentID string) (*models.Order, error) {
	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.RazorpayOrderID == nil || *o.RazorpayOrderID != gatewayOrderID {
		return nil, &ValidationError{Msg: "payment does not belong to this order"}
	}
	return s.repo.MarkPaid(ctx, orderNumber, paymentID)
}

// Dashboard aggregates the staff overview counters.
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return s.repo.Dashboard(ctx)
}

func (s *Service) validateCreate(req models.CreateOrderRequest, userID *int64) error {
	if len(req.Items) == 0 {
		return &ValidationError{Msg: "items are required"}
	}
	for i, item := range req.Items {
		if item.Title == "" {
			return &ValidationError{Msg: fmt.Sprintf("item %d: title is required", i+1)}
		}
		if item.Quantity < 1 {
			return &ValidationError{Msg: fmt.Sprintf("item %d: quantity must be at least 1", i+1)}
		}
		if item.Price < 0 {
			return &ValidationError{Msg: fmt.Sprintf("item %d: price must not be negative", i+1)}
		}
	}

	addr := req.Address
	if addr.Line1 == "" || addr.City == "" || addr.State == "" || addr.Pincode == "" || addr.Phone == "" {
		return &ValidationError{Msg: "address line1, city, state, pincode and phone are required"}
	}

	// Exactly one of owning user / guest identity.
	if userID == nil && (req.GuestName == "" || req.GuestPhone == "") {
		return &ValidationError{Msg: "guest orders require guest_name and guest_phone"}
	}

	switch req.PaymentMethod {
	case "", models.PaymentMethodCash, models.PaymentMethodOnline, models.PaymentMethodCard:
	default:
		return &ValidationError{Msg: "unknown payment method: " + req.PaymentMethod}
	}

	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func paginated(orders []models.Order, page, limit, total int) *models.OrderList {
	pages := (total + limit - 1) / limit
	return &models.OrderList{
		Orders: orders,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}
}
