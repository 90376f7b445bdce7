package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
)

type Step string

const (
	StepCart    Step = "cart"
	StepPickup  Step = "pickup"
	StepDetails Step = "details"
	StepConfirm Step = "confirm"
)

var steps = []Step{StepCart, StepPickup, StepDetails, StepConfirm}

var (
	ErrCannotAdvance   = errors.New("current step is incomplete")
	ErrNotAtConfirm    = errors.New("not at the confirm step")
	ErrDateUnavailable = errors.New("pickup date not available")
	ErrSlotUnavailable = errors.New("pickup time not available")
	// ErrFettisdagenDate marks the deliberate hard fork: the general
	// checkout refuses the promotion date and points at the dedicated
	// flow, which knows the minimum-quantity rule.
	ErrFettisdagenDate = errors.New("use the fettisdagen flow for this date")
)

type checkoutState struct {
	step       Step
	pickupDate string
	pickupTime string
	customer   domain.CustomerInfo
	notes      string

	inFlight  bool
	submitKey string
	complete  bool
	orderID   string
}

// CheckoutView is the read model handed to the transport layer.
type CheckoutView struct {
	Step        Step                `json:"step"`
	PickupDate  string              `json:"pickupDate,omitempty"`
	PickupTime  string              `json:"pickupTime,omitempty"`
	Customer    domain.CustomerInfo `json:"customer"`
	Notes       string              `json:"notes,omitempty"`
	CanProceed  bool                `json:"canProceed"`
	Conflicts   []string            `json:"conflicts,omitempty"`
	Fettisdagen bool                `json:"fettisdagenSelected,omitempty"`
	Complete    bool                `json:"complete"`
	OrderID     string              `json:"orderId,omitempty"`
}

// CheckoutService drives the four-step wizard. One state per session,
// owned here; forward motion is gated per step, backward motion is
// always free.
type CheckoutService struct {
	carts  *CartService
	sched  *schedule.Engine
	submit *SubmitOrder
	log    *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*checkoutState
}

func NewCheckoutService(carts *CartService, sched *schedule.Engine, submit *SubmitOrder, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		sched:    sched,
		submit:   submit,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*checkoutState),
	}
}

func (s *CheckoutService) state(sessionID string) *checkoutState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &checkoutState{step: StepCart, submitKey: uuid.NewString()}
		s.sessions[sessionID] = st
	}
	return st
}

// conflicts returns the names of cart lines not baked on the chosen
// date's weekday. Nil until a date is chosen.
func (s *CheckoutService) conflicts(cart domain.Cart, pickupDate string) []string {
	if pickupDate == "" {
		return nil
	}
	day, err := schedule.DayOfWeek(pickupDate)
	if err != nil {
		return nil
	}
	var names []string
	for _, it := range cart.ConflictsOn(day) {
		names = append(names, it.Product.NameSv)
	}
	return names
}

func (s *CheckoutService) canProceed(st *checkoutState, cart domain.Cart) bool {
	switch st.step {
	case StepCart:
		return !cart.Empty()
	case StepPickup:
		if s.sched.IsFettisdagen(st.pickupDate) {
			return false
		}
		return st.pickupDate != "" && st.pickupTime != "" &&
			len(s.conflicts(cart, st.pickupDate)) == 0
	case StepDetails:
		return st.customer.Validate() == nil
	case StepConfirm:
		return true
	}
	return false
}

func (s *CheckoutService) view(st *checkoutState, cart domain.Cart) CheckoutView {
	return CheckoutView{
		Step:        st.step,
		PickupDate:  st.pickupDate,
		PickupTime:  st.pickupTime,
		Customer:    st.customer,
		Notes:       st.notes,
		CanProceed:  s.canProceed(st, cart),
		Conflicts:   s.conflicts(cart, st.pickupDate),
		Fettisdagen: s.sched.IsFettisdagen(st.pickupDate),
		Complete:    st.complete,
		OrderID:     st.orderID,
	}
}

func (s *CheckoutService) State(ctx context.Context, sessionID string) CheckoutView {
	cart := s.carts.Get(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.state(sessionID), cart)
}

// SelectPickup sets the date and, optionally, the time slot. Changing
// the date always clears a previously chosen slot first, so a stale
// time can never survive a date change. The Fettisdagen date may be
// selected (the view flags it); any other date must come from the
// engine's current date list.
func (s *CheckoutService) SelectPickup(ctx context.Context, sessionID, date, slot string) (CheckoutView, error) {
	cart := s.carts.Get(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sessionID)

	if date != st.pickupDate {
		if !s.sched.IsFettisdagen(date) && !slices.Contains(s.sched.PickupDates(s.now()), date) {
			return s.view(st, cart), ErrDateUnavailable
		}
		st.pickupDate = date
		st.pickupTime = ""
	}
	if slot != "" {
		times, err := s.sched.PickupTimes(st.pickupDate)
		if err != nil || !slices.Contains(times, slot) {
			return s.view(st, cart), ErrSlotUnavailable
		}
		st.pickupTime = slot
	}
	return s.view(st, cart), nil
}

func (s *CheckoutService) SetDetails(ctx context.Context, sessionID string, customer domain.CustomerInfo, notes string) CheckoutView {
	cart := s.carts.Get(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sessionID)
	st.customer = customer
	st.notes = notes
	return s.view(st, cart)
}

// Advance moves one step forward when the current step's gate passes.
// The Fettisdagen date is reported distinctly so the caller can point
// the customer at the dedicated flow.
func (s *CheckoutService) Advance(ctx context.Context, sessionID string) (CheckoutView, error) {
	cart := s.carts.Get(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sessionID)

	if st.step == StepPickup && s.sched.IsFettisdagen(st.pickupDate) {
		return s.view(st, cart), ErrFettisdagenDate
	}
	if !s.canProceed(st, cart) {
		return s.view(st, cart), ErrCannotAdvance
	}
	if i := slices.Index(steps, st.step); i >= 0 && i < len(steps)-1 {
		st.step = steps[i+1]
	}
	return s.view(st, cart), nil
}

// Back never validates.
func (s *CheckoutService) Back(ctx context.Context, sessionID string) CheckoutView {
	cart := s.carts.Get(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sessionID)
	if i := slices.Index(steps, st.step); i > 0 {
		st.step = steps[i-1]
	}
	return s.view(st, cart)
}

// Submit assembles and persists the order from the confirm step. The
// cart is cleared only after the store reports success; on failure the
// whole flow stays put for a retry.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string) (CheckoutView, error) {
	cart := s.carts.Get(ctx, sessionID)

	s.mu.Lock()
	st := s.state(sessionID)
	if st.step != StepConfirm {
		s.mu.Unlock()
		return s.view(st, cart), ErrNotAtConfirm
	}
	if st.inFlight {
		s.mu.Unlock()
		return s.view(st, cart), ErrSubmitInFlight
	}
	// Re-check every gate: the confirm step itself has no entry
	// condition, the terminal gate is here.
	if cart.Empty() || st.pickupDate == "" || st.pickupTime == "" ||
		s.sched.IsFettisdagen(st.pickupDate) ||
		len(s.conflicts(cart, st.pickupDate)) > 0 ||
		st.customer.Validate() != nil {
		s.mu.Unlock()
		return s.view(st, cart), ErrCannotAdvance
	}
	st.inFlight = true
	key := st.submitKey
	order := buildOrder(cart, st)
	s.mu.Unlock()

	id, err := s.submit.Execute(ctx, key, order)

	s.mu.Lock()
	defer s.mu.Unlock()
	st.inFlight = false
	if err != nil {
		return s.view(st, cart), err
	}
	st.complete = true
	st.orderID = id
	st.submitKey = uuid.NewString() // next flow in this session is a new order
	s.carts.Clear(ctx, sessionID)
	return s.view(st, domain.Cart{}), nil
}

// Reset starts a fresh wizard after a completed order.
func (s *CheckoutService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func buildOrder(cart domain.Cart, st *checkoutState) *domain.Order {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		name := it.Product.NameSv
		if it.VariantName != "" {
			name += " (" + it.VariantName + ")"
		}
		items = append(items, domain.OrderItem{
			ProductID:   it.Product.ID,
			ProductName: name,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice(),
		})
	}
	return &domain.Order{
		Items:       items,
		Customer:    st.customer,
		PickupDate:  st.pickupDate,
		PickupTime:  st.pickupTime,
		Status:      domain.StatusPending,
		TotalAmount: cart.TotalAmount(),
		Notes:       st.notes,
	}
}
