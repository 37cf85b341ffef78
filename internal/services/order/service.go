package order

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comanda/internal/apperr"
	"comanda/internal/logger"
	"comanda/internal/messaging"
	"comanda/internal/models"
)

// OrderStore is the persistence surface the order component needs.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByTable(ctx context.Context, tableID primitive.ObjectID) ([]models.Order, error)
	ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.Order, error)
	ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TableStore is the slice of the seating repository orders depend on.
type TableStore interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AccountStore resolves the staff reference on an order.
type AccountStore interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
}

// ProductStore resolves line-item product references.
type ProductStore interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// Service implements the order lifecycle: create, resolved listings, the
// pending/completed toggle, and deletion.
type Service struct {
	orders    OrderStore
	tables    TableStore
	accounts  AccountStore
	products  ProductStore
	broadcast messaging.Broadcaster
	logger    *logger.Logger

	// removeTableOnDelete makes order deletion also delete the referenced
	// table. Off unless explicitly configured.
	removeTableOnDelete bool
}

func NewService(orders OrderStore, tables TableStore, accounts AccountStore, products ProductStore,
	broadcast messaging.Broadcaster, log *logger.Logger, removeTableOnDelete bool,
) *Service {
	return &Service{
		orders:              orders,
		tables:              tables,
		accounts:            accounts,
		products:            products,
		broadcast:           broadcast,
		logger:              log,
		removeTableOnDelete: removeTableOnDelete,
	}
}

// Create persists a pending order for the authenticated account and
// broadcasts the resolved result.
func (s *Service) Create(ctx context.Context, accountID string, req *models.CreateOrderRequest) (*models.ResolvedOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.New(apperr.Validation, err.Error())
	}

	accountOID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, apperr.New(apperr.Auth, "invalid account identity")
	}
	tableOID, err := primitive.ObjectIDFromHex(req.TableID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid table id")
	}

	if _, err := s.tables.ByID(ctx, tableOID); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productOID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "invalid product id")
		}
		items = append(items, models.OrderItem{ProductID: productOID, Quantity: item.Quantity})
	}

	order := &models.Order{
		TableID:   tableOID,
		AccountID: accountOID,
		Items:     items,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, order)
	if err != nil {
		return nil, err
	}

	s.broadcast.Publish(ctx, models.EventOrderCreated, resolved)
	s.logger.Info("order_created", "", "Order created", map[string]any{
		"order_id":   order.ID.Hex(),
		"table_id":   req.TableID,
		"account_id": accountID,
		"item_count": len(items),
	})
	return resolved, nil
}

// List returns all orders, resolved, in creation order.
func (s *Service) List(ctx context.Context) ([]*models.ResolvedOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders)
}

// ListByTable returns the resolved orders placed against one table.
func (s *Service) ListByTable(ctx context.Context, tableID string) ([]*models.ResolvedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(tableID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid table id")
	}
	orders, err := s.orders.ListByTable(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders)
}

// ListByAccount returns the resolved orders placed by one staff account.
func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]*models.ResolvedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid account id")
	}
	orders, err := s.orders.ListByAccount(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders)
}

// ListChecked returns the resolved orders already marked completed.
func (s *Service) ListChecked(ctx context.Context) ([]*models.ResolvedOrder, error) {
	orders, err := s.orders.ListByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, orders)
}

// ToggleStatus flips an order between pending and completed and broadcasts
// the resolved result.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*models.ResolvedOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid order id")
	}

	order, err := s.orders.ByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	order.Status = order.Status.Toggle()
	if err := s.orders.UpdateStatus(ctx, oid, order.Status); err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, order)
	if err != nil {
		return nil, err
	}

	s.broadcast.Publish(ctx, models.EventOrderChecked, resolved)
	s.logger.Info("order_status_toggled", "", "Order status toggled", map[string]any{
		"order_id": id,
		"status":   order.Status,
	})
	return resolved, nil
}

// Delete removes an order and, when configured, the table it referenced.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid order id")
	}

	order, err := s.orders.ByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, oid); err != nil {
		return err
	}

	if s.removeTableOnDelete {
		if err := s.tables.Delete(ctx, order.TableID); err != nil && !apperr.IsKind(err, apperr.NotFound) {
			s.logger.Error("table_cascade_failed", "", "Failed to delete table for removed order", err, map[string]any{
				"order_id": id,
				"table_id": order.TableID.Hex(),
			})
		}
	}

	s.broadcast.Publish(ctx, models.EventOrderDeleted, map[string]string{"id": id})
	s.logger.Info("order_deleted", "", "Order deleted", map[string]any{"order_id": id})
	return nil
}

// resolve expands an order's references into sub-documents. A reference that
// no longer exists resolves to null rather than failing the whole read.
func (s *Service) resolve(ctx context.Context, order *models.Order) (*models.ResolvedOrder, error) {
	resolved := &models.ResolvedOrder{
		ID:        order.ID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Items:     make([]models.ResolvedItem, 0, len(order.Items)),
	}

	table, err := s.tables.ByID(ctx, order.TableID)
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}
	resolved.Table = table

	account, err := s.accounts.ByID(ctx, order.AccountID)
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}
	resolved.Account = account.Public()

	for _, item := range order.Items {
		product, err := s.products.ByID(ctx, item.ProductID)
		if err != nil && !apperr.IsKind(err, apperr.NotFound) {
			return nil, err
		}
		resolved.Items = append(resolved.Items, models.ResolvedItem{
			Product:  product,
			Quantity: item.Quantity,
		})
	}

	return resolved, nil
}

func (s *Service) resolveAll(ctx context.Context, orders []models.Order) ([]*models.ResolvedOrder, error) {
	resolved := make([]*models.ResolvedOrder, 0, len(orders))
	for i := range orders {
		r, err := s.resolve(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}
