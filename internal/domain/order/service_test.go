package order

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/cart"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

type fixture struct {
	orders    *Service
	cart      *cart.Service
	addresses *user.AddressService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.NewMemoryStore()
	cfg := &config.Config{}
	rc := remote.NewClient(cfg, log)

	cartSvc := cart.NewService(st, catalog.NewService(), rc, log)
	addrSvc := user.NewAddressService(st, rc, log)

	return &fixture{
		orders:    NewService(st, cartSvc, addrSvc, rc, log),
		cart:      cartSvc,
		addresses: addrSvc,
	}
}

func (f *fixture) seedAddress(t *testing.T, ctx context.Context, userID string) *user.Address {
	t.Helper()
	addr, err := f.addresses.AddAddress(ctx, userID, &user.CreateAddressRequest{
		Label: "Home", Street: "123 Main St", City: "New York", State: "NY", Zip: "10001",
		Coordinates: &user.Coordinates{Lat: 40.7128, Lng: -74.006},
	})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	return addr
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCreateOrderFromCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	// product-1: 3.99 with 20% discount, product-2: 4.49 plain
	if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 2); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := f.cart.AddToCart(ctx, "user-1", "product-2", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	o, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	subtotal := math.Round((3.99*0.8*2+4.49)*100) / 100
	if !almostEqual(o.SubTotal, subtotal) {
		t.Errorf("SubTotal = %v, want %v", o.SubTotal, subtotal)
	}
	wantTax := math.Round(subtotal*0.05*100) / 100
	if !almostEqual(o.Tax, wantTax) {
		t.Errorf("Tax = %v, want %v", o.Tax, wantTax)
	}
	if !almostEqual(o.DeliveryFee, 2.99) {
		t.Errorf("DeliveryFee = %v, want 2.99 below the free-delivery threshold", o.DeliveryFee)
	}
	if !almostEqual(o.Total, math.Round((subtotal+wantTax+2.99)*100)/100) {
		t.Errorf("Total = %v, want subtotal+tax+fee", o.Total)
	}
	if o.Status != StatusConfirmed {
		t.Errorf("Status = %s, want confirmed", o.Status)
	}
	if got := o.EstimatedAt.Sub(o.CreatedAt); got != 2*time.Hour {
		t.Errorf("delivery window = %v, want 2h", got)
	}

	// Item prices are the discounted snapshot
	if !almostEqual(o.Items[0].UnitPrice, 3.99*0.8) {
		t.Errorf("UnitPrice = %v, want discounted 3.192", o.Items[0].UnitPrice)
	}

	// Checkout clears the cart
	c, _ := f.cart.GetCart(ctx, "user-1")
	if len(c.Lines) != 0 {
		t.Fatalf("cart must be empty after checkout, got %+v", c.Lines)
	}
}

func TestCreateOrderRequiresCartAndAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"}); err == nil {
		t.Fatal("expected empty-cart checkout to fail")
	}

	if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"}); err == nil {
		t.Fatal("expected checkout without an address to fail")
	}

	// The failed checkout must not have consumed the cart
	c, _ := f.cart.GetCart(ctx, "user-1")
	if len(c.Lines) != 1 {
		t.Fatalf("cart must survive a failed checkout, got %+v", c.Lines)
	}
}

func TestFreeDeliveryThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	// product-13 at 8.99 x 4 = 35.96 crosses the threshold
	if _, err := f.cart.AddToCart(ctx, "user-1", "product-13", 4); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	o, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.DeliveryFee != 0 {
		t.Fatalf("DeliveryFee = %v, want 0 at subtotal %v", o.DeliveryFee, o.SubTotal)
	}
}

func TestOrderNumberFormatAndSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	f.orders.now = func() time.Time { return now }

	var numbers []string
	for i := 0; i < 2; i++ {
		if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 1); err != nil {
			t.Fatalf("AddToCart: %v", err)
		}
		o, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		numbers = append(numbers, o.OrderNumber)
	}

	if numbers[0] != "ORD-20260210-00001" || numbers[1] != "ORD-20260210-00002" {
		t.Fatalf("unexpected order numbers %v", numbers)
	}
	if !strings.HasPrefix(numbers[0], "ORD-") {
		t.Fatalf("order number %s missing prefix", numbers[0])
	}
}

func TestStatusProgressesWithTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	placed := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	f.orders.now = func() time.Time { return placed }

	if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	o, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	cases := []struct {
		elapsed time.Duration
		want    Status
	}{
		{5 * time.Minute, StatusConfirmed},
		{20 * time.Minute, StatusPreparing},
		{1 * time.Hour, StatusOutForDelivery},
		{3 * time.Hour, StatusDelivered},
	}
	for _, tc := range cases {
		f.orders.now = func() time.Time { return placed.Add(tc.elapsed) }
		got, err := f.orders.GetOrder(ctx, "user-1", o.ID)
		if err != nil {
			t.Fatalf("GetOrder: %v", err)
		}
		if got.Status != tc.want {
			t.Errorf("status after %v = %s, want %s", tc.elapsed, got.Status, tc.want)
		}
	}
}

func TestTrackOrderCourierInterpolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	placed := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	f.orders.now = func() time.Time { return placed }

	if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	o, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Mid-leg: courier is strictly between origin and destination
	f.orders.now = func() time.Time { return placed.Add(80 * time.Minute) }
	tr, err := f.orders.TrackOrder(ctx, "user-1", o.ID)
	if err != nil {
		t.Fatalf("TrackOrder: %v", err)
	}
	if tr.Status != StatusOutForDelivery {
		t.Fatalf("Status = %s, want out_for_delivery", tr.Status)
	}
	if tr.CourierPosition == nil || tr.Destination == nil {
		t.Fatal("expected courier and destination positions")
	}
	if tr.CourierPosition.Lat <= tr.Destination.Lat-0.02 || tr.CourierPosition.Lat >= tr.Destination.Lat {
		t.Fatalf("courier lat %v not between origin and destination", tr.CourierPosition.Lat)
	}

	// Delivered: courier sits on the destination
	f.orders.now = func() time.Time { return placed.Add(3 * time.Hour) }
	tr, err = f.orders.TrackOrder(ctx, "user-1", o.ID)
	if err != nil {
		t.Fatalf("TrackOrder: %v", err)
	}
	if tr.Status != StatusDelivered {
		t.Fatalf("Status = %s, want delivered", tr.Status)
	}
	if tr.CourierPosition == nil || !almostEqual(tr.CourierPosition.Lat, tr.Destination.Lat) {
		t.Fatalf("delivered courier position should equal destination, got %+v", tr.CourierPosition)
	}
}

func TestCancelOrderBeforeDispatchOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	placed := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	f.orders.now = func() time.Time { return placed }

	if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	o, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Still preparing: cancel succeeds and sticks
	f.orders.now = func() time.Time { return placed.Add(20 * time.Minute) }
	cancelled, err := f.orders.CancelOrder(ctx, "user-1", o.ID)
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != StatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled order, got %+v", cancelled)
	}

	// The stored cancellation wins over the clock
	f.orders.now = func() time.Time { return placed.Add(3 * time.Hour) }
	got, _ := f.orders.GetOrder(ctx, "user-1", o.ID)
	if got.Status != StatusCancelled {
		t.Fatalf("Status = %s, want cancelled to be terminal", got.Status)
	}

	// A dispatched order cannot be cancelled
	f.orders.now = func() time.Time { return placed }
	if _, err := f.cart.AddToCart(ctx, "user-1", "product-2", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	second, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	f.orders.now = func() time.Time { return placed.Add(1 * time.Hour) }
	if _, err := f.orders.CancelOrder(ctx, "user-1", second.ID); err == nil {
		t.Fatal("expected cancel to fail once out for delivery")
	}
}

func TestListOrdersPaginationAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAddress(t, ctx, "user-1")

	placed := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	f.orders.now = func() time.Time { return placed }

	for i := 0; i < 3; i++ {
		if _, err := f.cart.AddToCart(ctx, "user-1", "product-1", 1); err != nil {
			t.Fatalf("AddToCart: %v", err)
		}
		if _, err := f.orders.CreateOrder(ctx, "user-1", &CreateOrderRequest{PaymentMethod: "card"}); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	resp := f.orders.ListOrders(ctx, "user-1", &ListOrdersRequest{Page: 1, Limit: 2})
	if resp.Total != 3 || len(resp.Orders) != 2 || resp.TotalPages != 2 {
		t.Fatalf("unexpected page: total=%d len=%d pages=%d", resp.Total, len(resp.Orders), resp.TotalPages)
	}
	// Newest first
	if resp.Orders[0].OrderNumber != "ORD-20260210-00003" {
		t.Fatalf("expected newest order first, got %s", resp.Orders[0].OrderNumber)
	}

	resp = f.orders.ListOrders(ctx, "user-1", &ListOrdersRequest{Page: 2, Limit: 2})
	if len(resp.Orders) != 1 {
		t.Fatalf("expected one order on the last page, got %d", len(resp.Orders))
	}

	resp = f.orders.ListOrders(ctx, "user-1", &ListOrdersRequest{Page: 1, Limit: 10, Status: "cancelled"})
	if resp.Total != 0 {
		t.Fatalf("expected no cancelled orders, got %d", resp.Total)
	}
}
