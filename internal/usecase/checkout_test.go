package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
)

var (
	ryeBread = domain.Product{ID: "rye-bread", Name: "Rye Bread", NameSv: "Rågbröd", Price: 58, Category: domain.CategoryBread, Available: true}

	levain = domain.Product{
		ID: "levain", NameSv: "Levain", Price: 72, Category: domain.CategoryBread, Available: true,
		AvailableDays: []domain.Weekday{domain.Tuesday, domain.Thursday},
	}

	anna = domain.CustomerInfo{Name: "Anna", Email: "a@b.se", Phone: "0701234567"}
)

// Fixed clock: Saturday 2026-08-29 09:00, well before cutoff. The
// following week: Tue 09-01, Wed 09-02, Thu 09-03.
func testClock() time.Time {
	return time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)
}

type checkoutFixture struct {
	carts    *CartService
	checkout *CheckoutService
	orders   *memOrderStore
	cartDB   *memCartStore
	queue    *capturingQueue
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	log := discardLog()
	orders := &memOrderStore{}
	cartDB := newMemCartStore()
	queue := &capturingQueue{}
	carts := NewCartService(cartDB, log)
	submit := NewSubmitOrder(orders, newMemIdem(), queue, log)
	checkout := NewCheckoutService(carts, schedule.New(schedule.DefaultConfig()), submit, log)
	checkout.now = testClock
	return &checkoutFixture{carts: carts, checkout: checkout, orders: orders, cartDB: cartDB, queue: queue}
}

func TestAdvanceBlockedOnEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.Advance(ctx, "s1")
	assert.ErrorIs(t, err, ErrCannotAdvance)

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	view, err := f.checkout.Advance(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StepPickup, view.Step)
}

func TestConflictGating(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", levain, ""))
	_, err := f.checkout.Advance(ctx, "s1")
	require.NoError(t, err)

	// Wednesday: levain is only baked Tuesday/Thursday.
	view, err := f.checkout.SelectPickup(ctx, "s1", "2026-09-02", "10:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"Levain"}, view.Conflicts)
	assert.False(t, view.CanProceed)

	_, err = f.checkout.Advance(ctx, "s1")
	assert.ErrorIs(t, err, ErrCannotAdvance)

	// Thursday clears the conflict.
	view, err = f.checkout.SelectPickup(ctx, "s1", "2026-09-03", "10:00")
	require.NoError(t, err)
	assert.Empty(t, view.Conflicts)
	assert.True(t, view.CanProceed)

	view, err = f.checkout.Advance(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StepDetails, view.Step)
}

func TestDateChangeResetsTimeSlot(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	view, err := f.checkout.SelectPickup(ctx, "s1", "2026-09-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00", view.PickupTime)

	view, err = f.checkout.SelectPickup(ctx, "s1", "2026-09-03", "")
	require.NoError(t, err)
	assert.Empty(t, view.PickupTime, "stale slot must not survive a date change")
}

func TestSelectPickupValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	// Monday is closed, never in the date list.
	_, err := f.checkout.SelectPickup(ctx, "s1", "2026-08-31", "")
	assert.ErrorIs(t, err, ErrDateUnavailable)

	// Weekend slots end at 15:00.
	_, err = f.checkout.SelectPickup(ctx, "s1", "2026-09-05", "17:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestFettisdagenDateDivertsFromGeneralFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	// Clock before the promotion so its date is within the horizon.
	f.checkout.now = func() time.Time {
		return time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	}

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	_, err := f.checkout.Advance(ctx, "s1")
	require.NoError(t, err)

	view, err := f.checkout.SelectPickup(ctx, "s1", "2026-02-17", "10:00")
	require.NoError(t, err)
	assert.True(t, view.Fettisdagen)
	assert.False(t, view.CanProceed)

	_, err = f.checkout.Advance(ctx, "s1")
	assert.ErrorIs(t, err, ErrFettisdagenDate)
}

func TestBackNeverValidates(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	_, err := f.checkout.Advance(ctx, "s1")
	require.NoError(t, err)

	f.carts.Clear(ctx, "s1")
	view := f.checkout.Back(ctx, "s1")
	assert.Equal(t, StepCart, view.Step)
	view = f.checkout.Back(ctx, "s1")
	assert.Equal(t, StepCart, view.Step, "back at the first step stays put")
}

func advanceToConfirm(t *testing.T, f *checkoutFixture, session string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.checkout.Advance(ctx, session)
	require.NoError(t, err)
	_, err = f.checkout.SelectPickup(ctx, session, "2026-09-01", "10:00")
	require.NoError(t, err)
	_, err = f.checkout.Advance(ctx, session)
	require.NoError(t, err)
	f.checkout.SetDetails(ctx, session, anna, "")
	_, err = f.checkout.Advance(ctx, session)
	require.NoError(t, err)
}

func TestEndToEndRyeBreadScenario(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	f.carts.SetQuantity(ctx, "s1", ryeBread.ID, "", 2)
	cart := f.carts.Get(ctx, "s1")
	assert.Equal(t, int64(116), cart.TotalAmount())

	advanceToConfirm(t, f, "s1")

	view, err := f.checkout.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, view.Complete)
	assert.NotEmpty(t, view.OrderID)

	require.Len(t, f.orders.orders, 1)
	o := f.orders.orders[0]
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.False(t, o.IsFettisdagenOrder)
	assert.Equal(t, "2026-09-01", o.PickupDate)
	assert.Equal(t, "10:00", o.PickupTime)
	assert.Equal(t, int64(116), o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Equal(t, domain.OrderItem{
		ProductID: "rye-bread", ProductName: "Rågbröd", Quantity: 2, Price: 58,
	}, o.Items[0])

	clearedCart := f.carts.Get(ctx, "s1")
	assert.True(t, clearedCart.Empty(), "cart cleared after success")
	require.Len(t, f.queue.msgs, 1)
	assert.Equal(t, o.ID, f.queue.msgs[0].OrderID)
}

func TestSnapshotIsolation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	p := ryeBread
	require.NoError(t, f.carts.AddItem(ctx, "s1", p, ""))
	advanceToConfirm(t, f, "s1")
	_, err := f.checkout.Submit(ctx, "s1")
	require.NoError(t, err)

	// A later catalog price change must not reach the stored order.
	p.Price = 99
	assert.Equal(t, int64(58), f.orders.orders[0].Items[0].Price)
	assert.Equal(t, int64(58), f.orders.orders[0].TotalAmount)
}

func TestSubmitFailureKeepsCartIntact(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	advanceToConfirm(t, f, "s1")

	f.orders.failCreate = true
	view, err := f.checkout.Submit(ctx, "s1")
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.False(t, view.Complete)
	assert.Equal(t, StepConfirm, view.Step)
	survivingCart := f.carts.Get(ctx, "s1")
	assert.False(t, survivingCart.Empty(), "cart survives a failed submission")

	// User retries after the store recovers.
	f.orders.failCreate = false
	view, err = f.checkout.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, view.Complete)
	require.Len(t, f.orders.orders, 1)
}

func TestDuplicateSubmitCreatesOneOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	advanceToConfirm(t, f, "s1")

	first, err := f.checkout.Submit(ctx, "s1")
	require.NoError(t, err)

	// A second tap lands after the first resolved; the idempotency
	// record answers with the same order id.
	second, err := f.checkout.Submit(ctx, "s1")
	assert.ErrorIs(t, err, ErrCannotAdvance, "cart is empty now, flow is complete")
	_ = second

	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, first.OrderID, f.orders.orders[0].ID)
}

func TestSubmitRequiresConfirmStep(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	_, err := f.checkout.Submit(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotAtConfirm)
}

func TestCartPersistsAcrossServiceInstances(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.carts.AddItem(ctx, "s1", ryeBread, ""))
	f.carts.SetQuantity(ctx, "s1", ryeBread.ID, "", 3)

	// Fresh service over the same store: rehydrates once at startup.
	again := NewCartService(f.cartDB, discardLog())
	cart := again.Get(ctx, "s1")
	assert.Equal(t, 3, cart.TotalItems())
}

func TestCartSaveFailureDegradesToMemory(t *testing.T) {
	cartDB := newMemCartStore()
	cartDB.failSave = true
	carts := NewCartService(cartDB, discardLog())
	ctx := context.Background()

	require.NoError(t, carts.AddItem(ctx, "s1", ryeBread, ""))
	memCart := carts.Get(ctx, "s1")
	assert.Equal(t, 1, memCart.TotalItems(), "in-memory state stays authoritative")
}

func TestAddItemVariantRules(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	withVariants := domain.Product{
		ID: "princess-cake", NameSv: "Prinsesstårta", Price: 320,
		Variants: []domain.Variant{{ID: "large", NameSv: "Stor", PriceDiff: 120}},
	}
	assert.ErrorIs(t, f.carts.AddItem(ctx, "s1", withVariants, ""), domain.ErrVariantRequired)
	assert.ErrorIs(t, f.carts.AddItem(ctx, "s1", withVariants, "nope"), domain.ErrUnknownVariant)
	assert.ErrorIs(t, f.carts.AddItem(ctx, "s1", ryeBread, "large"), domain.ErrUnknownVariant)

	require.NoError(t, f.carts.AddItem(ctx, "s1", withVariants, "large"))
	cart := f.carts.Get(ctx, "s1")
	assert.Equal(t, int64(440), cart.TotalAmount())
}
