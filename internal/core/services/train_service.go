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

type SearchTrainsRequest struct {
	Source      string `json:"source" validate:"required,max=100"`
	Destination string `json:"destination" validate:"required,max=100"`
	TimeFilter  string `json:"time_filter"`
}

type CreateTrainRequest struct {
	Name          string `json:"train_name" validate:"required,max=100"`
	Source        string `json:"source" validate:"required,max=100"`
	Destination   string `json:"destination" validate:"required,max=100"`
	DepartureTime string `json:"departure_time" validate:"required,hhmm"`
	ArrivalTime   string `json:"arrival_time" validate:"omitempty,hhmm"`
	TotalSeats    int    `json:"total_seats" validate:"gt=0,lte=5000"`
}

type TrainResponse struct {
	domain.Train
	AvailableSeats int    `json:"available_seats"`
	TravelTime     string `json:"travel_time"`
}

type AvailabilityResponse struct {
	TrainID        string `json:"train_id"`
	TotalSeats     int    `json:"total_seats"`
	Confirmed      int    `json:"confirmed"`
	AvailableSeats int    `json:"available_seats"`
	RACLimit       int    `json:"rac_limit"`
	WaitlistCap    int    `json:"waitlist_cap"`
}

type TrainService struct {
	trains ports.TrainRepository
	cache  ports.SeatCache
	log    *logger.Logger
}

func NewTrainService(trains ports.TrainRepository, cache ports.SeatCache, log *logger.Logger) *TrainService {
	if log == nil {
		log = logger.Discard()
	}
	return &TrainService{
		trains: trains,
		cache:  cache,
		log:    log.With("component", "train_service"),
	}
}

func (s *TrainService) Search(ctx context.Context, req SearchTrainsRequest) ([]TrainResponse, error) {
	req.Source = strings.TrimSpace(req.Source)
	req.Destination = strings.TrimSpace(req.Destination)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	trains, err := s.trains.Search(ctx, domain.TrainQuery{
		Source:      req.Source,
		Destination: req.Destination,
		Filter:      domain.TimeFilter(strings.ToLower(strings.TrimSpace(req.TimeFilter))),
	})
	if err != nil {
		return nil, apperror.Internal("failed to search trains", err)
	}

	if len(trains) == 0 {
		return []TrainResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(trains))
	for _, t := range trains {
		ids = append(ids, t.ID)
	}

	confirmed, err := s.confirmedCounts(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("failed to load seat availability", err)
	}

	out := make([]TrainResponse, 0, len(trains))
	for _, t := range trains {
		out = append(out, TrainResponse{
			Train:          t,
			AvailableSeats: max(t.TotalSeats-confirmed[t.ID], 0),
			TravelTime:     TravelTime(t.DepartureTime, t.ArrivalTime),
		})
	}
	return out, nil
}

func (s *TrainService) GetTrain(ctx context.Context, trainID uuid.UUID) (*TrainResponse, error) {
	train, err := s.get(ctx, trainID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.confirmedCounts(ctx, []uuid.UUID{trainID})
	if err != nil {
		return nil, apperror.Internal("failed to load seat availability", err)
	}

	return &TrainResponse{
		Train:          *train,
		AvailableSeats: max(train.TotalSeats-confirmed[trainID], 0),
		TravelTime:     TravelTime(train.DepartureTime, train.ArrivalTime),
	}, nil
}

func (s *TrainService) Availability(ctx context.Context, trainID uuid.UUID) (*AvailabilityResponse, error) {
	train, err := s.get(ctx, trainID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.confirmedCounts(ctx, []uuid.UUID{trainID})
	if err != nil {
		return nil, apperror.Internal("failed to load seat availability", err)
	}

	return &AvailabilityResponse{
		TrainID:        trainID.String(),
		TotalSeats:     train.TotalSeats,
		Confirmed:      confirmed[trainID],
		AvailableSeats: max(train.TotalSeats-confirmed[trainID], 0),
		RACLimit:       allocation.RACLimit(train.TotalSeats),
		WaitlistCap:    allocation.WaitlistCap(train.TotalSeats),
	}, nil
}

func (s *TrainService) AddTrain(ctx context.Context, req CreateTrainRequest) (*domain.Train, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Source = strings.TrimSpace(req.Source)
	req.Destination = strings.TrimSpace(req.Destination)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	train := &domain.Train{
		ID:            uuid.New(),
		Name:          req.Name,
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		TotalSeats:    req.TotalSeats,
		CreatedAt:     time.Now(),
	}

	if err := s.trains.Create(ctx, train); err != nil {
		return nil, apperror.Internal("failed to create train", err)
	}

	s.log.Info("train added", "train_id", train.ID, "name", train.Name, "total_seats", train.TotalSeats)
	return train, nil
}

func (s *TrainService) ListTrains(ctx context.Context) ([]domain.Train, error) {
	trains, err := s.trains.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list trains", err)
	}
	if trains == nil {
		trains = []domain.Train{}
	}
	return trains, nil
}

func (s *TrainService) get(ctx context.Context, trainID uuid.UUID) (*domain.Train, error) {
	train, err := s.trains.GetByID(ctx, trainID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("train")
		}
		return nil, apperror.Internal("failed to load train", err)
	}
	return train, nil
}

// confirmedCounts reads through the seat cache; misses are loaded in one
// query and written back.
func (s *TrainService) confirmedCounts(ctx context.Context, trainIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(trainIDs))
	var misses []uuid.UUID

	for _, id := range trainIDs {
		n, ok, err := s.cache.Confirmed(ctx, id)
		if err != nil {
			s.log.Warn("seat cache read failed", "train_id", id, "error", err)
		}
		if ok {
			counts[id] = n
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return counts, nil
	}

	loaded, err := s.trains.ConfirmedCounts(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("load confirmed counts: %w", err)
	}

	for _, id := range misses {
		counts[id] = loaded[id]
		if err := s.cache.StoreConfirmed(ctx, id, loaded[id]); err != nil {
			s.log.Warn("seat cache write failed", "train_id", id, "error", err)
		}
	}

	return counts, nil
}

// TravelTime formats the journey length as "Xh Ym", rolling arrival into
// the next day when it is earlier than departure.
func TravelTime(departure, arrival string) string {
	dep, err := time.Parse("15:04", departure)
	if err != nil {
		return "N/A"
	}
	arr, err := time.Parse("15:04", arrival)
	if err != nil {
		return "N/A"
	}

	if arr.Before(dep) {
		arr = arr.Add(24 * time.Hour)
	}

	d := arr.Sub(dep)
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
