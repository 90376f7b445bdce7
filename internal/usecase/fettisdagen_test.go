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

var kremla = domain.Product{
	ID: "kremla", Name: "Kremla", NameSv: "Kremla", Price: 45,
	Category: domain.CategorySeasonal, Available: true,
	IsFettisdagen: true, MinOrder: 10,
}

func newFettisdagenFixture(t *testing.T, products ...domain.Product) (*FettisdagenService, *memOrderStore) {
	t.Helper()
	log := discardLog()
	orders := &memOrderStore{}
	store := &memProductStore{products: products}
	submit := NewSubmitOrder(orders, newMemIdem(), NopQueue{}, log)
	svc := NewFettisdagenService(store, schedule.New(schedule.DefaultConfig()), submit, log)
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	}
	return svc, orders
}

func validInput() FettisdagenOrderInput {
	return FettisdagenOrderInput{
		Mandel:     6,
		Vanilj:     4,
		PickupTime: "09:00",
		Customer:   domain.CustomerInfo{Name: "Anna", Email: "a@b.se", Phone: "0701234567"},
	}
}

func TestMinimumQuantityBoundary(t *testing.T) {
	svc, orders := newFettisdagenFixture(t, kremla)
	ctx := context.Background()

	in := validInput()
	in.Mandel, in.Vanilj = 5, 4 // combined 9
	_, err := svc.Submit(ctx, "k1", in)
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)
	assert.Empty(t, orders.orders)

	in.Vanilj = 5 // combined 10
	id, err := svc.Submit(ctx, "k2", in)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSplitQuantitiesBecomeSeparateLines(t *testing.T) {
	svc, orders := newFettisdagenFixture(t, kremla)

	_, err := svc.Submit(context.Background(), "k1", validInput())
	require.NoError(t, err)

	require.Len(t, orders.orders, 1)
	o := orders.orders[0]
	assert.True(t, o.IsFettisdagenOrder)
	assert.Equal(t, "2026-02-17", o.PickupDate)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, int64(450), o.TotalAmount)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Kremla (Mandel)", o.Items[0].ProductName)
	assert.Equal(t, 6, o.Items[0].Quantity)
	assert.Equal(t, "Kremla (Vanilj)", o.Items[1].ProductName)
	assert.Equal(t, 4, o.Items[1].Quantity)
}

func TestSingleFillingYieldsOneLine(t *testing.T) {
	svc, orders := newFettisdagenFixture(t, kremla)

	in := validInput()
	in.Mandel, in.Vanilj = 10, 0
	_, err := svc.Submit(context.Background(), "k1", in)
	require.NoError(t, err)
	require.Len(t, orders.orders[0].Items, 1)
	assert.Equal(t, "Kremla (Mandel)", orders.orders[0].Items[0].ProductName)
}

func TestResolveProductPrefersFlag(t *testing.T) {
	flagged := kremla
	byName := domain.Product{ID: "semla-old", NameSv: "Semla", Price: 40}
	svc, _ := newFettisdagenFixture(t, byName, flagged)

	p, err := svc.ResolveProduct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kremla", p.ID)
}

func TestResolveProductNameFallback(t *testing.T) {
	byName := domain.Product{ID: "semla-old", NameSv: "Klassisk Semla", Price: 40}
	svc, _ := newFettisdagenFixture(t, byName, ryeBread)

	p, err := svc.ResolveProduct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "semla-old", p.ID)
}

func TestResolveProductMissing(t *testing.T) {
	svc, _ := newFettisdagenFixture(t, ryeBread)
	_, err := svc.ResolveProduct(context.Background())
	assert.ErrorIs(t, err, ErrNoFettisdagenItem)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newFettisdagenFixture(t, kremla)
	ctx := context.Background()

	in := validInput()
	in.PickupTime = ""
	_, err := svc.Submit(ctx, "k1", in)
	assert.ErrorIs(t, err, ErrPickupTimeRequired)

	in = validInput()
	in.PickupTime = "23:00" // outside the override hours
	_, err = svc.Submit(ctx, "k1", in)
	assert.ErrorIs(t, err, ErrPickupTimeRequired)

	in = validInput()
	in.Customer.Email = "nope"
	_, err = svc.Submit(ctx, "k1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)

	in = validInput()
	in.Mandel = -2
	in.Vanilj = 12
	_, err = svc.Submit(ctx, "k1", in)
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)
}

func TestSubmitAfterDateHasPassed(t *testing.T) {
	svc, _ := newFettisdagenFixture(t, kremla)
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 18, 8, 0, 0, 0, time.UTC)
	}
	assert.False(t, svc.Active())
	_, err := svc.Submit(context.Background(), "k1", validInput())
	assert.ErrorIs(t, err, ErrFettisdagenOver)
}

func TestOverview(t *testing.T) {
	svc, _ := newFettisdagenFixture(t, kremla)
	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, ov.Active)
	assert.Equal(t, "2026-02-17", ov.Date)
	assert.Equal(t, 10, ov.MinOrder)
	assert.Equal(t, "kremla", ov.Product.ID)
	assert.Equal(t, "07:00", ov.PickupTime[0])
}

func TestProductFloorFallsBackToConfig(t *testing.T) {
	noFloor := kremla
	noFloor.MinOrder = 0
	svc, _ := newFettisdagenFixture(t, noFloor)

	in := validInput()
	in.Mandel, in.Vanilj = 5, 4
	_, err := svc.Submit(context.Background(), "k1", in)
	assert.ErrorIs(t, err, ErrBelowMinimumOrder, "config floor of 10 applies")
}
