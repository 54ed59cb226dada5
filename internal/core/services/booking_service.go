package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/core/allocation"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

const (
	bookingsPerPage   = 10
	maxPNRAttempts    = 3
	dispatchBatchSize = 100
)

type CreateBookingRequest struct {
	TrainID         string `json:"train_id" validate:"required,uuid"`
	PassengerName   string `json:"passenger_name" validate:"required,max=100"`
	PassengerAge    int    `json:"passenger_age" validate:"gte=0,lte=125"`
	SeatClass       string `json:"seat_class" validate:"omitempty,max=32"`
	BerthPreference string `json:"berth_preference" validate:"omitempty,max=32"`
	SavePassenger   bool   `json:"save_passenger"`
	Email           string `json:"email" validate:"omitempty,email"`
}

type BookingResponse struct {
	PNR             string  `json:"pnr"`
	TrainID         string  `json:"train_id"`
	TrainName       string  `json:"train_name,omitempty"`
	Route           string  `json:"route,omitempty"`
	DepartureTime   string  `json:"departure_time,omitempty"`
	PassengerName   string  `json:"passenger_name"`
	PassengerAge    int     `json:"passenger_age"`
	SeatClass       string  `json:"seat_class"`
	BerthPreference string  `json:"berth_preference,omitempty"`
	Status          string  `json:"status"`
	SeatNumber      string  `json:"seat_number"`
	Fare            float64 `json:"fare"`
	BookedAt        string  `json:"booked_at"`
}

type BookingPage struct {
	Bookings   []BookingResponse `json:"bookings"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
}

type BookingDeps struct {
	Trains   ports.TrainRepository
	Bookings ports.BookingRepository
	Users    ports.UserRepository
	Cache    ports.SeatCache
	Limiter  ports.RateLimiter
	Notifier ports.Notifier
	PNR      *PNRGenerator
	Berths   *allocation.BerthPicker
	Log      *logger.Logger
}

type BookingService struct {
	trains   ports.TrainRepository
	bookings ports.BookingRepository
	users    ports.UserRepository
	cache    ports.SeatCache
	limiter  ports.RateLimiter
	notifier ports.Notifier
	pnr      *PNRGenerator
	berths   *allocation.BerthPicker
	log      *logger.Logger
	uids     intSource
	now      func() time.Time
}

func NewBookingService(deps BookingDeps) *BookingService {
	if deps.PNR == nil {
		deps.PNR = NewPNRGenerator()
	}
	if deps.Berths == nil {
		deps.Berths = allocation.NewBerthPicker(nil)
	}
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}

	return &BookingService{
		trains:   deps.Trains,
		bookings: deps.Bookings,
		users:    deps.Users,
		cache:    deps.Cache,
		limiter:  deps.Limiter,
		notifier: deps.Notifier,
		pnr:      deps.PNR,
		berths:   deps.Berths,
		log:      deps.Log.With("component", "booking_service"),
		uids:     globalIntSource{},
		now:      time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	req.PassengerName = strings.TrimSpace(req.PassengerName)
	req.SeatClass = strings.TrimSpace(req.SeatClass)
	req.BerthPreference = strings.TrimSpace(req.BerthPreference)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	trainID, err := uuid.Parse(req.TrainID)
	if err != nil {
		return nil, apperror.InvalidInput("invalid train id")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("user no longer exists")
		}
		return nil, apperror.Internal("failed to load user", err)
	}

	if err := s.limiter.Allow(ctx, "booking:"+userID.String()); err != nil {
		if errors.Is(err, ports.ErrRateLimited) {
			return nil, apperror.TooManyRequests("too many booking attempts, please try again later", err)
		}
		s.log.Warn("rate limiter unavailable, allowing request", "user_id", userID, "error", err)
	}

	name := req.PassengerName
	class := domain.ParseSeatClass(req.SeatClass)
	email := req.Email
	if email == "" {
		email = user.Email
	}

	booking := &domain.Booking{
		ID:              uuid.New(),
		TrainID:         trainID,
		UserID:          userID,
		PassengerName:   name,
		PassengerAge:    req.PassengerAge,
		SeatClass:       class,
		BerthPreference: s.berths.Pick(req.PassengerAge, req.BerthPreference),
		ContactEmail:    email,
		CreatedAt:       s.now(),
	}

	var train domain.Train
	err = s.bookings.WithTrainLock(ctx, trainID, func(ctx context.Context, ledger ports.TrainLedger) error {
		train = *ledger.Train()

		counts, err := ledger.Counts(ctx)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}

		if allocation.IsFullyBooked(train.TotalSeats, counts) {
			return domain.ErrTrainFullyBooked
		}

		decision := allocation.Allocate(train.TotalSeats, counts, class)
		booking.Status = decision.Status
		booking.SeatNumber = decision.SeatNumber
		booking.Fare = decision.Fare

		return s.insertWithFreshPNR(ctx, ledger, booking)
	})

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, apperror.NotFound("train")
	case errors.Is(err, domain.ErrTrainFullyBooked):
		return nil, apperror.Conflict("train is fully booked and the waitlist is closed")
	case err != nil:
		return nil, apperror.Internal("failed to create booking", err)
	}

	s.log.Info("booking created",
		"pnr", booking.PNR,
		"train_id", trainID,
		"status", booking.Status,
		"seat_number", booking.SeatNumber,
	)

	if err := s.cache.Invalidate(ctx, trainID); err != nil {
		s.log.Warn("failed to invalidate seat cache", "train_id", trainID, "error", err)
	}

	if req.SavePassenger && !user.HasPassenger(name, req.PassengerAge) {
		passenger := domain.Passenger{
			UID:             newPassengerUID(s.uids),
			Name:            name,
			Age:             req.PassengerAge,
			BerthPreference: req.BerthPreference,
		}
		if err := s.users.AddPassenger(ctx, userID, passenger); err != nil {
			s.log.Warn("failed to save passenger", "user_id", userID, "error", err)
		}
	}

	resp := toBookingResponse(*booking, &train)
	return &resp, nil
}

func (s *BookingService) insertWithFreshPNR(ctx context.Context, ledger ports.TrainLedger, booking *domain.Booking) error {
	for attempt := 1; ; attempt++ {
		booking.PNR = s.pnr.Generate()

		err := ledger.Insert(ctx, booking)
		if !errors.Is(err, domain.ErrDuplicatePNR) || attempt == maxPNRAttempts {
			return err
		}

		s.log.Warn("pnr collision, regenerating", "pnr", booking.PNR, "attempt", attempt)
	}
}

func (s *BookingService) GetByPNR(ctx context.Context, pnr string) (*BookingResponse, error) {
	booking, err := s.lookup(ctx, pnr)
	if err != nil {
		return nil, err
	}

	resp := toBookingResponse(*booking, booking.Train)
	return &resp, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID, page int) (*BookingPage, error) {
	total, err := s.bookings.CountByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to count bookings", err)
	}

	page = clampPage(page)
	bookings, err := s.bookings.ListByUser(ctx, userID, bookingsPerPage, (page-1)*bookingsPerPage)
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}

	return newBookingPage(bookings, page, total), nil
}

// ListAll pages through every booking, newest first. Admin only.
func (s *BookingService) ListAll(ctx context.Context, page int) (*BookingPage, error) {
	total, err := s.bookings.CountAll(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to count bookings", err)
	}

	page = clampPage(page)
	bookings, err := s.bookings.ListAll(ctx, bookingsPerPage, (page-1)*bookingsPerPage)
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}

	return newBookingPage(bookings, page, total), nil
}

// FindReturnTrain looks for a train running the booked route in reverse.
func (s *BookingService) FindReturnTrain(ctx context.Context, pnr string) (*domain.Train, error) {
	booking, err := s.lookup(ctx, pnr)
	if err != nil {
		return nil, err
	}

	train := booking.Train
	if train == nil {
		if train, err = s.trains.GetByID(ctx, booking.TrainID); err != nil {
			return nil, apperror.Internal("failed to load train", err)
		}
	}

	back, err := s.trains.FindByRoute(ctx, train.Destination, train.Source)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("return train")
		}
		return nil, apperror.Internal("failed to search return train", err)
	}

	return back, nil
}

func (s *BookingService) lookup(ctx context.Context, pnr string) (*domain.Booking, error) {
	pnr = strings.ToUpper(strings.TrimSpace(pnr))
	if pnr == "" {
		return nil, apperror.InvalidInput("pnr is required")
	}

	booking, err := s.bookings.GetByPNR(ctx, pnr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("booking")
		}
		return nil, apperror.Internal("failed to load booking", err)
	}

	return booking, nil
}

func (s *BookingService) RunNotificationDispatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("notification dispatcher started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			s.dispatchPending(ctx)
		}
	}
}

func (s *BookingService) dispatchPending(ctx context.Context) {
	pending, err := s.bookings.ListUnnotified(ctx, dispatchBatchSize)
	if err != nil {
		s.log.Error("failed to fetch pending notifications", "error", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	s.log.Info("dispatching booking notifications", "count", len(pending))

	for _, booking := range pending {
		if err := s.notifier.BookingCreated(ctx, newBookingEvent(booking)); err != nil {
			s.log.Error("failed to publish booking notification", "pnr", booking.PNR, "error", err)
			continue
		}

		if err := s.bookings.MarkNotified(ctx, booking.ID); err != nil {
			s.log.Error("failed to mark booking notified", "pnr", booking.PNR, "error", err)
		}
	}
}

func newBookingEvent(b domain.Booking) domain.BookingEvent {
	event := domain.BookingEvent{
		BookingID:     b.ID.String(),
		PNR:           b.PNR,
		Email:         b.ContactEmail,
		PassengerName: b.PassengerName,
		PassengerAge:  b.PassengerAge,
		SeatNumber:    b.SeatNumber,
		SeatClass:     string(b.SeatClass),
		Status:        string(b.Status),
		Fare:          b.Fare,
		BookedAt:      b.CreatedAt,
	}
	if b.Train != nil {
		event.TrainName = b.Train.Name
		event.Route = route(b.Train)
		event.DepartureTime = b.Train.DepartureTime
	}
	return event
}

func toBookingResponse(b domain.Booking, train *domain.Train) BookingResponse {
	resp := BookingResponse{
		PNR:             b.PNR,
		TrainID:         b.TrainID.String(),
		PassengerName:   b.PassengerName,
		PassengerAge:    b.PassengerAge,
		SeatClass:       string(b.SeatClass),
		BerthPreference: b.BerthPreference,
		Status:          string(b.Status),
		SeatNumber:      b.SeatNumber,
		Fare:            b.Fare,
		BookedAt:        b.CreatedAt.Format(time.RFC3339),
	}
	if train != nil {
		resp.TrainName = train.Name
		resp.Route = route(train)
		resp.DepartureTime = train.DepartureTime
	}
	return resp
}

func newBookingPage(bookings []domain.Booking, page, total int) *BookingPage {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingResponse(b, b.Train))
	}

	return &BookingPage{
		Bookings:   items,
		Page:       page,
		TotalPages: (total + bookingsPerPage - 1) / bookingsPerPage,
		Total:      total,
	}
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func route(t *domain.Train) string {
	return t.Source + " -> " + t.Destination
}
