package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
)

var (
	ErrFettisdagenOver    = errors.New("fettisdagen has passed")
	ErrNoFettisdagenItem  = errors.New("no fettisdagen product in catalog")
	ErrBelowMinimumOrder  = errors.New("quantity below minimum order")
	ErrPickupTimeRequired = errors.New("pickup time not chosen")
)

// Filling names for the two sub-variants of the split order.
const (
	FillingMandel = "Mandel"
	FillingVanilj = "Vanilj"
)

// FettisdagenService is the parallel single-product flow for the annual
// Shrove Tuesday promotion: fixed pickup date, one product, minimum
// combined quantity split over two fillings. It bypasses the cart
// entirely.
type FettisdagenService struct {
	products ProductStore
	sched    *schedule.Engine
	submit   *SubmitOrder
	log      *slog.Logger
	now      func() time.Time
}

func NewFettisdagenService(products ProductStore, sched *schedule.Engine, submit *SubmitOrder, log *slog.Logger) *FettisdagenService {
	return &FettisdagenService{
		products: products,
		sched:    sched,
		submit:   submit,
		log:      log,
		now:      time.Now,
	}
}

// Active reports whether orders are still accepted: on the configured
// date and before, not after.
func (s *FettisdagenService) Active() bool {
	return s.sched.FettisdagenUpcoming(s.now())
}

// ResolveProduct finds the designated product. The explicit flag is the
// primary path; matching on the Swedish name is a degraded fallback for
// catalogs seeded before the flag existed.
func (s *FettisdagenService) ResolveProduct(ctx context.Context) (domain.Product, error) {
	products, err := s.products.GetProducts(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.IsFettisdagen {
			return p, nil
		}
	}
	for _, p := range products {
		name := strings.ToLower(p.NameSv)
		if strings.Contains(name, "semla") || strings.Contains(name, "kremla") {
			s.log.Warn("fettisdagen product resolved by name fallback", "product_id", p.ID)
			return p, nil
		}
	}
	return domain.Product{}, ErrNoFettisdagenItem
}

// Overview is the read model for the promotion page.
type Overview struct {
	Active     bool           `json:"active"`
	Date       string         `json:"date"`
	MinOrder   int            `json:"minOrder"`
	Product    domain.Product `json:"product"`
	PickupTime []string       `json:"pickupTimes"`
}

func (s *FettisdagenService) Overview(ctx context.Context) (Overview, error) {
	p, err := s.ResolveProduct(ctx)
	if err != nil {
		return Overview{}, err
	}
	cfg := s.sched.Config().Fettisdagen
	times, err := s.sched.PickupTimes(cfg.Date)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Active:     s.Active(),
		Date:       cfg.Date,
		MinOrder:   s.minOrder(p),
		Product:    p,
		PickupTime: times,
	}, nil
}

// The product's own floor wins when set; the config floor is the default.
func (s *FettisdagenService) minOrder(p domain.Product) int {
	if p.MinOrder > 0 {
		return p.MinOrder
	}
	return s.sched.Config().Fettisdagen.MinOrder
}

type FettisdagenOrderInput struct {
	Mandel     int
	Vanilj     int
	PickupTime string
	Customer   domain.CustomerInfo
	Notes      string
}

// Submit validates and places the promotion order: one line per
// non-zero filling, both at the product's unit price, pickup pinned to
// the configured date, tagged as a Fettisdagen order. key scopes the
// duplicate-submission guard.
func (s *FettisdagenService) Submit(ctx context.Context, key string, in FettisdagenOrderInput) (string, error) {
	if !s.Active() {
		return "", ErrFettisdagenOver
	}
	p, err := s.ResolveProduct(ctx)
	if err != nil {
		return "", err
	}

	if in.Mandel < 0 || in.Vanilj < 0 {
		return "", ErrBelowMinimumOrder
	}
	total := in.Mandel + in.Vanilj
	if total < s.minOrder(p) {
		return "", ErrBelowMinimumOrder
	}

	cfg := s.sched.Config().Fettisdagen
	times, err := s.sched.PickupTimes(cfg.Date)
	if err != nil {
		return "", err
	}
	if in.PickupTime == "" || !slices.Contains(times, in.PickupTime) {
		return "", ErrPickupTimeRequired
	}
	if err := in.Customer.Validate(); err != nil {
		return "", err
	}

	var items []domain.OrderItem
	if in.Mandel > 0 {
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.NameSv + " (" + FillingMandel + ")",
			Quantity:    in.Mandel,
			Price:       p.Price,
		})
	}
	if in.Vanilj > 0 {
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.NameSv + " (" + FillingVanilj + ")",
			Quantity:    in.Vanilj,
			Price:       p.Price,
		})
	}

	order := &domain.Order{
		Items:              items,
		Customer:           in.Customer,
		PickupDate:         cfg.Date,
		PickupTime:         in.PickupTime,
		Status:             domain.StatusPending,
		TotalAmount:        p.Price * int64(total),
		Notes:              in.Notes,
		IsFettisdagenOrder: true,
	}
	return s.submit.Execute(ctx, key, order)
}
