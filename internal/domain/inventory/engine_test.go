package inventory

import (
	"context"
	"sync"
	"testing"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/catalogs/product"
)

// fakeProductStore is an in-memory ProductStore. The mutex stands in for the
// database row locks: tests that exercise concurrency serialize whole
// operations through withLock the way FOR UPDATE serializes transactions.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[id.ID]*product.Product
}

func newFakeProductStore(products ...*product.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) UpdateStock(ctx context.Context, productID id.ID, quantity int64, averageCost types.Money) error {
	p, ok := s.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.Quantity = quantity
	p.AverageCost = averageCost
	return nil
}

func (s *fakeProductStore) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func newTestProduct(name string, qty int64, avgCost, salePrice string) *product.Product {
	p := product.NewProduct("PRD-0001", name, id.New().String(), id.New().String(), types.MustMoney(salePrice))
	p.Quantity = qty
	p.AverageCost = types.MustMoney(avgCost)
	return p
}

func TestEngine_Receive_FirstPurchase(t *testing.T) {
	p := newTestProduct("Screen", 0, "0", "99.90")
	store := newFakeProductStore(p)
	engine := NewEngine(store)

	res, err := engine.Receive(context.Background(), p.ID, 10, types.MustMoney("5.99"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", res.Quantity)
	}
	if !res.AverageCost.Equal(types.MustMoney("5.99")) {
		t.Errorf("expected average cost 5.99, got %s", res.AverageCost)
	}

	stored := store.products[p.ID]
	if stored.Quantity != 10 || !stored.AverageCost.Equal(types.MustMoney("5.99")) {
		t.Errorf("stored state not updated: qty=%d avg=%s", stored.Quantity, stored.AverageCost)
	}
}

func TestEngine_Receive_BlendsAverage(t *testing.T) {
	p := newTestProduct("Battery", 5, "4.50", "20.00")
	store := newFakeProductStore(p)
	engine := NewEngine(store)

	res, err := engine.Receive(context.Background(), p.ID, 10, types.MustMoney("5.99"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Quantity != 15 {
		t.Errorf("expected quantity 15, got %d", res.Quantity)
	}
	want := types.MustMoney("82.40").Div(types.MoneyFromInt(15))
	if !res.AverageCost.Equal(want) {
		t.Errorf("expected average cost %s, got %s", want, res.AverageCost)
	}
}

func TestEngine_Receive_Validation(t *testing.T) {
	p := newTestProduct("Cable", 0, "0", "5.00")
	store := newFakeProductStore(p)
	engine := NewEngine(store)
	ctx := context.Background()

	if _, err := engine.Receive(ctx, p.ID, 0, types.MustMoney("1.00")); !hasCode(err, apperror.CodeValidation) {
		t.Errorf("zero quantity: expected VALIDATION_ERROR, got %v", err)
	}
	if _, err := engine.Receive(ctx, p.ID, 5, types.MustMoney("-1.00")); !hasCode(err, apperror.CodeValidation) {
		t.Errorf("negative cost: expected VALIDATION_ERROR, got %v", err)
	}
	if _, err := engine.Receive(ctx, id.New(), 5, types.MustMoney("1.00")); !apperror.IsNotFound(err) {
		t.Errorf("unknown product: expected NOT_FOUND, got %v", err)
	}
}

func TestEngine_Issue_SnapshotsPriceAndCost(t *testing.T) {
	p := newTestProduct("Display", 8, "10.00", "25.50")
	store := newFakeProductStore(p)
	engine := NewEngine(store)

	results, err := engine.Issue(context.Background(), []IssueLine{{ProductID: p.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if !r.SalePrice.Equal(types.MustMoney("25.50")) {
		t.Errorf("expected price snapshot 25.50, got %s", r.SalePrice)
	}
	if !r.AverageCost.Equal(types.MustMoney("10.00")) {
		t.Errorf("expected cost snapshot 10.00, got %s", r.AverageCost)
	}

	stored := store.products[p.ID]
	if stored.Quantity != 6 {
		t.Errorf("expected quantity 6, got %d", stored.Quantity)
	}
	// Issues never move the cost basis.
	if !stored.AverageCost.Equal(types.MustMoney("10.00")) {
		t.Errorf("average cost changed on issue: %s", stored.AverageCost)
	}
}

// A later purchase that moves the average must not affect snapshots taken
// earlier: they are plain values, decoupled from the product row.
func TestEngine_Issue_SnapshotImmuneToLaterPurchases(t *testing.T) {
	p := newTestProduct("Chip", 10, "10.00", "30.00")
	store := newFakeProductStore(p)
	engine := NewEngine(store)
	ctx := context.Background()

	results, err := engine.Issue(ctx, []IssueLine{{ProductID: p.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapshot := results[0].AverageCost

	// Purchase at a higher cost moves the product's average to 12.
	if _, err := engine.Receive(ctx, p.ID, 8, types.MustMoney("14.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.products[p.ID].AverageCost.Equal(types.MustMoney("12.00")) {
		t.Fatalf("setup: expected average 12.00, got %s", store.products[p.ID].AverageCost)
	}

	if !snapshot.Equal(types.MustMoney("10.00")) {
		t.Errorf("snapshot drifted to %s", snapshot)
	}
}

func TestEngine_Issue_InsufficientStockNamesProduct(t *testing.T) {
	p := newTestProduct("Glass", 5, "2.00", "8.00")
	store := newFakeProductStore(p)
	engine := NewEngine(store)

	_, err := engine.Issue(context.Background(), []IssueLine{{ProductID: p.ID, Quantity: 6}})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	if appErr.Details["product_id"] != p.ID.String() {
		t.Errorf("expected product_id detail, got %v", appErr.Details)
	}
	if appErr.Details["requested"] != int64(6) || appErr.Details["available"] != int64(5) {
		t.Errorf("expected requested=6 available=5, got %v", appErr.Details)
	}
}

// One short line fails the whole batch before any write happens.
func TestEngine_Issue_AllOrNothing(t *testing.T) {
	ok := newTestProduct("Frame", 10, "3.00", "9.00")
	short := newTestProduct("Lens", 1, "5.00", "15.00")
	store := newFakeProductStore(ok, short)
	engine := NewEngine(store)

	_, err := engine.Issue(context.Background(), []IssueLine{
		{ProductID: ok.ID, Quantity: 4},
		{ProductID: short.ID, Quantity: 2},
	})
	if !hasCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}

	if store.products[ok.ID].Quantity != 10 {
		t.Errorf("other line was decremented: %d", store.products[ok.ID].Quantity)
	}
	if store.products[short.ID].Quantity != 1 {
		t.Errorf("short line was decremented: %d", store.products[short.ID].Quantity)
	}
}

// The same product on several lines is checked against its combined demand.
func TestEngine_Issue_CombinedDemandPerProduct(t *testing.T) {
	p := newTestProduct("Screw", 5, "0.10", "0.50")
	store := newFakeProductStore(p)
	engine := NewEngine(store)

	_, err := engine.Issue(context.Background(), []IssueLine{
		{ProductID: p.ID, Quantity: 3},
		{ProductID: p.ID, Quantity: 3},
	})
	if !hasCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("expected INSUFFICIENT_STOCK for combined demand 6 > 5, got %v", err)
	}
}

func TestEngine_Issue_EmptyLines(t *testing.T) {
	engine := NewEngine(newFakeProductStore())
	if _, err := engine.Issue(context.Background(), nil); !hasCode(err, apperror.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

// Two concurrent issues of 6 against quantity 10: exactly one succeeds and
// the final quantity is 4. The fake's mutex plays the role of the row lock.
func TestEngine_Issue_ConcurrentSalesOnSharedStock(t *testing.T) {
	p := newTestProduct("Case", 10, "4.00", "12.00")
	store := newFakeProductStore(p)
	engine := NewEngine(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.withLock(func() error {
				_, err := engine.Issue(context.Background(), []IssueLine{{ProductID: p.ID, Quantity: 6}})
				return err
			})
		}(i)
	}
	wg.Wait()

	var okCount, shortCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case hasCode(err, apperror.CodeInsufficientStock):
			shortCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if okCount != 1 || shortCount != 1 {
		t.Errorf("expected exactly one success and one shortfall, got ok=%d short=%d", okCount, shortCount)
	}
	if got := store.products[p.ID].Quantity; got != 4 {
		t.Errorf("expected final quantity 4, got %d", got)
	}
}

func hasCode(err error, code string) bool {
	appErr, ok := apperror.AsAppError(err)
	return ok && appErr.Code == code
}
