package order

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comanda/internal/apperr"
	"comanda/internal/logger"
	"comanda/internal/models"
)

type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
	seq    int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	f.seq++
	order.CreatedAt = time.Unix(int64(f.seq), 0).UTC()
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) filter(keep func(*models.Order) bool) []models.Order {
	out := []models.Order{}
	for _, order := range f.orders {
		if keep(order) {
			out = append(out, *order)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.Before(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func (f *fakeOrderStore) List(_ context.Context) ([]models.Order, error) {
	return f.filter(func(*models.Order) bool { return true }), nil
}

func (f *fakeOrderStore) ListByTable(_ context.Context, tableID primitive.ObjectID) ([]models.Order, error) {
	return f.filter(func(o *models.Order) bool { return o.TableID == tableID }), nil
}

func (f *fakeOrderStore) ListByAccount(_ context.Context, accountID primitive.ObjectID) ([]models.Order, error) {
	return f.filter(func(o *models.Order) bool { return o.AccountID == accountID }), nil
}

func (f *fakeOrderStore) ListByStatus(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	return f.filter(func(o *models.Order) bool { return o.Status == status }), nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	order.Status = status
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	delete(f.orders, id)
	return nil
}

type fakeTableStore struct {
	tables map[primitive.ObjectID]*models.Table
}

func (f *fakeTableStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Table, error) {
	table, ok := f.tables[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "table not found")
	}
	cp := *table
	return &cp, nil
}

func (f *fakeTableStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.tables[id]; !ok {
		return apperr.New(apperr.NotFound, "table not found")
	}
	delete(f.tables, id)
	return nil
}

type fakeAccountStore struct {
	accounts map[primitive.ObjectID]*models.Account
}

func (f *fakeAccountStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	acc, ok := f.accounts[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "account not found")
	}
	cp := *acc
	return &cp, nil
}

type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func (f *fakeProductStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	cp := *product
	return &cp, nil
}

type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) Publish(_ context.Context, event string, _ any) {
	f.events = append(f.events, event)
}

type fixture struct {
	svc       *Service
	orders    *fakeOrderStore
	tables    *fakeTableStore
	accounts  *fakeAccountStore
	products  *fakeProductStore
	broadcast *fakeBroadcaster

	table   *models.Table
	account *models.Account
	product *models.Product
}

func newFixture(removeTableOnDelete bool) *fixture {
	table := &models.Table{ID: primitive.NewObjectID(), Number: 5}
	account := &models.Account{ID: primitive.NewObjectID(), Email: "a@x.com", Role: models.RoleWaiter}
	product := &models.Product{ID: primitive.NewObjectID(), Name: "Margherita", Price: 9.99}

	f := &fixture{
		orders:    newFakeOrderStore(),
		tables:    &fakeTableStore{tables: map[primitive.ObjectID]*models.Table{table.ID: table}},
		accounts:  &fakeAccountStore{accounts: map[primitive.ObjectID]*models.Account{account.ID: account}},
		products:  &fakeProductStore{products: map[primitive.ObjectID]*models.Product{product.ID: product}},
		broadcast: &fakeBroadcaster{},
		table:     table,
		account:   account,
		product:   product,
	}
	f.svc = NewService(f.orders, f.tables, f.accounts, f.products, f.broadcast,
		logger.New("order-test"), removeTableOnDelete)
	return f
}

func (f *fixture) createRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		TableID: f.table.ID.Hex(),
		Items:   []models.CreateOrderItem{{ProductID: f.product.ID.Hex(), Quantity: 2}},
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	resolved, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resolved.Status != models.StatusPending {
		t.Errorf("expected pending status, got %s", resolved.Status)
	}
	if resolved.Table == nil || resolved.Table.Number != 5 {
		t.Errorf("expected resolved table 5, got %+v", resolved.Table)
	}
	if resolved.Account == nil || resolved.Account.Email != "a@x.com" {
		t.Errorf("expected resolved account, got %+v", resolved.Account)
	}
	if resolved.Account != nil && resolved.Account.PasswordHash != "" {
		t.Error("expected resolved account to exclude the hash")
	}
	if len(resolved.Items) != 1 || resolved.Items[0].Product == nil || resolved.Items[0].Product.Name != "Margherita" {
		t.Errorf("expected resolved product, got %+v", resolved.Items)
	}
	if len(f.broadcast.events) != 1 || f.broadcast.events[0] != models.EventOrderCreated {
		t.Errorf("expected %s event, got %v", models.EventOrderCreated, f.broadcast.events)
	}
}

func TestCreate_EmptyItems(t *testing.T) {
	f := newFixture(false)

	req := &models.CreateOrderRequest{TableID: f.table.ID.Hex()}
	_, err := f.svc.Create(context.Background(), f.account.ID.Hex(), req)
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.orders.orders) != 0 {
		t.Error("expected no record to be created")
	}
	if len(f.broadcast.events) != 0 {
		t.Error("expected no event for rejected order")
	}
}

func TestCreate_UnknownTable(t *testing.T) {
	f := newFixture(false)

	req := f.createRequest()
	req.TableID = primitive.NewObjectID().Hex()
	_, err := f.svc.Create(context.Background(), f.account.ID.Hex(), req)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleStatus_RoundTrips(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	resolved, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest())
	if err != nil {
		t.Fatal(err)
	}

	toggled, err := f.svc.ToggleStatus(ctx, resolved.ID.Hex())
	if err != nil {
		t.Fatalf("ToggleStatus returned error: %v", err)
	}
	if toggled.Status != models.StatusCompleted {
		t.Errorf("expected completed, got %s", toggled.Status)
	}

	toggled, err = f.svc.ToggleStatus(ctx, resolved.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if toggled.Status != models.StatusPending {
		t.Errorf("expected pending after second toggle, got %s", toggled.Status)
	}

	want := []string{models.EventOrderCreated, models.EventOrderChecked, models.EventOrderChecked}
	if len(f.broadcast.events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, f.broadcast.events)
	}
	for i := range want {
		if f.broadcast.events[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, f.broadcast.events[i], want[i])
		}
	}
}

func TestToggleStatus_NotFound(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.ToggleStatus(context.Background(), primitive.NewObjectID().Hex())
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListChecked(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest()); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.ToggleStatus(ctx, first.ID.Hex()); err != nil {
		t.Fatal(err)
	}

	checked, err := f.svc.ListChecked(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(checked) != 1 || checked[0].ID != first.ID {
		t.Errorf("expected only the toggled order, got %d orders", len(checked))
	}
}

func TestResolve_DanglingProductIsNull(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	resolved, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest())
	if err != nil {
		t.Fatal(err)
	}

	// Simulate the product being deleted after the order was placed.
	delete(f.products.products, f.product.ID)

	orders, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].ID != resolved.ID {
		t.Error("unexpected order in listing")
	}
	if orders[0].Items[0].Product != nil {
		t.Error("expected dangling product reference to resolve to null")
	}
	if orders[0].Items[0].Quantity != 2 {
		t.Errorf("expected quantity to survive resolution, got %d", orders[0].Items[0].Quantity)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	resolved, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest())
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Delete(ctx, resolved.ID.Hex()); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(f.orders.orders) != 0 {
		t.Error("expected order record to be removed")
	}
	if _, ok := f.tables.tables[f.table.ID]; !ok {
		t.Error("expected table to survive order deletion by default")
	}
	if f.broadcast.events[len(f.broadcast.events)-1] != models.EventOrderDeleted {
		t.Errorf("expected %s event, got %v", models.EventOrderDeleted, f.broadcast.events)
	}

	if err := f.svc.Delete(ctx, resolved.ID.Hex()); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDelete_CascadeRemovesTable(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	resolved, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest())
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Delete(ctx, resolved.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.tables.tables[f.table.ID]; ok {
		t.Error("expected table to be deleted with the order when cascade is configured")
	}
}

func TestListByTableAndAccount(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.account.ID.Hex(), f.createRequest()); err != nil {
		t.Fatal(err)
	}

	byTable, err := f.svc.ListByTable(ctx, f.table.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if len(byTable) != 1 {
		t.Errorf("expected 1 order for table, got %d", len(byTable))
	}

	byAccount, err := f.svc.ListByAccount(ctx, f.account.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if len(byAccount) != 1 {
		t.Errorf("expected 1 order for account, got %d", len(byAccount))
	}

	none, err := f.svc.ListByTable(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty listing for unknown table, got %d", len(none))
	}
}
