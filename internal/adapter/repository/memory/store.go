// Package memory keeps trains, users and bookings in process memory.
// It backs local development (STORAGE_DRIVER=memory) and service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
)

// Store is shared by the three repositories so bookings can see trains and users.
type Store struct {
	mu       sync.RWMutex
	trains   map[uuid.UUID]domain.Train
	users    map[uuid.UUID]domain.User
	bookings []domain.Booking

	locksMu    sync.Mutex
	trainLocks map[uuid.UUID]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		trains:     make(map[uuid.UUID]domain.Train),
		users:      make(map[uuid.UUID]domain.User),
		trainLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) Trains() *TrainRepository     { return &TrainRepository{s: s} }
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }
func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }

func (s *Store) trainLock(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.trainLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.trainLocks[id] = l
	}
	return l
}

// withTrain returns a copy of b with its train attached. Caller holds s.mu.
func (s *Store) withTrain(b domain.Booking) domain.Booking {
	if t, ok := s.trains[b.TrainID]; ok {
		b.Train = &t
	}
	return b
}

type TrainRepository struct {
	s *Store
}

func (r *TrainRepository) Create(_ context.Context, train *domain.Train) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.trains[train.ID] = *train
	return nil
}

func (r *TrainRepository) GetByID(_ context.Context, trainID uuid.UUID) (*domain.Train, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.trains[trainID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *TrainRepository) Search(_ context.Context, q domain.TrainQuery) ([]domain.Train, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	from, to, windowed := q.Filter.Window()

	var out []domain.Train
	for _, t := range r.s.trains {
		if !strings.EqualFold(t.Source, q.Source) || !strings.EqualFold(t.Destination, q.Destination) {
			continue
		}
		if windowed && (t.DepartureTime < from || t.DepartureTime >= to) {
			continue
		}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime < out[j].DepartureTime })
	return out, nil
}

func (r *TrainRepository) FindByRoute(_ context.Context, source, destination string) (*domain.Train, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.Train
	for _, t := range r.s.trains {
		if strings.EqualFold(t.Source, source) && strings.EqualFold(t.Destination, destination) {
			if found == nil || t.CreatedAt.Before(found.CreatedAt) {
				t := t
				found = &t
			}
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r *TrainRepository) List(_ context.Context) ([]domain.Train, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Train, 0, len(r.s.trains))
	for _, t := range r.s.trains {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TrainRepository) ConfirmedCounts(_ context.Context, trainIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(trainIDs))
	for _, id := range trainIDs {
		wanted[id] = true
	}

	counts := make(map[uuid.UUID]int, len(trainIDs))
	for _, b := range r.s.bookings {
		if wanted[b.TrainID] && b.Status == domain.BookingConfirmed {
			counts[b.TrainID]++
		}
	}
	return counts, nil
}

type BookingRepository struct {
	s *Store
}

type ledger struct {
	s       *Store
	train   domain.Train
	pending []domain.Booking
}

func (l *ledger) Train() *domain.Train {
	return &l.train
}

func (l *ledger) Counts(_ context.Context) (domain.StatusCounts, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	var counts domain.StatusCounts
	for _, b := range l.s.bookings {
		if b.TrainID == l.train.ID {
			counts.Add(b.Status)
		}
	}
	for _, b := range l.pending {
		counts.Add(b.Status)
	}
	return counts, nil
}

func (l *ledger) Insert(_ context.Context, booking *domain.Booking) error {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	for _, b := range l.s.bookings {
		if b.PNR == booking.PNR {
			return domain.ErrDuplicatePNR
		}
	}
	for _, b := range l.pending {
		if b.PNR == booking.PNR {
			return domain.ErrDuplicatePNR
		}
	}

	l.pending = append(l.pending, *booking)
	return nil
}

func (r *BookingRepository) WithTrainLock(ctx context.Context, trainID uuid.UUID, fn func(ctx context.Context, ledger ports.TrainLedger) error) error {
	lock := r.s.trainLock(trainID)
	lock.Lock()
	defer lock.Unlock()

	r.s.mu.RLock()
	train, ok := r.s.trains[trainID]
	r.s.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}

	l := &ledger{s: r.s, train: train}
	if err := fn(ctx, l); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// The batch commits whole or not at all.
	for _, b := range l.pending {
		for _, existing := range r.s.bookings {
			if existing.PNR == b.PNR {
				return domain.ErrDuplicatePNR
			}
		}
	}
	r.s.bookings = append(r.s.bookings, l.pending...)
	return nil
}

func (r *BookingRepository) GetByPNR(_ context.Context, pnr string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookings {
		if b.PNR == pnr {
			b = r.s.withTrain(b)
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

// newestFirst returns the matching bookings, most recent first. Caller holds s.mu.
func (r *BookingRepository) newestFirst(match func(domain.Booking) bool) []domain.Booking {
	var out []domain.Booking
	for i := len(r.s.bookings) - 1; i >= 0; i-- {
		if b := r.s.bookings[i]; match(b) {
			out = append(out, r.s.withTrain(b))
		}
	}
	return out
}

func page(items []domain.Booking, limit, offset int) []domain.Booking {
	if offset >= len(items) {
		return []domain.Booking{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func (r *BookingRepository) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.newestFirst(func(b domain.Booking) bool { return b.UserID == userID }), limit, offset), nil
}

func (r *BookingRepository) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepository) ListAll(_ context.Context, limit, offset int) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.newestFirst(func(domain.Booking) bool { return true }), limit, offset), nil
}

func (r *BookingRepository) CountAll(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.bookings), nil
}

func (r *BookingRepository) ListUnnotified(_ context.Context, limit int) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Booking
	for _, b := range r.s.bookings {
		if len(out) == limit {
			break
		}
		if !b.Notified {
			out = append(out, r.s.withTrain(b))
		}
	}
	return out, nil
}

func (r *BookingRepository) MarkNotified(_ context.Context, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.bookings {
		if r.s.bookings[i].ID == bookingID {
			r.s.bookings[i].Notified = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *BookingRepository) DeleteByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := map[uuid.UUID]bool{}
	var trains []uuid.UUID
	kept := r.s.bookings[:0]
	for _, b := range r.s.bookings {
		if b.UserID != userID {
			kept = append(kept, b)
			continue
		}
		if !seen[b.TrainID] {
			seen[b.TrainID] = true
			trains = append(trains, b.TrainID)
		}
	}
	r.s.bookings = kept
	return trains, nil
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	r.s.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) UpdateProfile(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}

	current.Username = user.Username
	current.Email = user.Email
	current.PhoneNumber = user.PhoneNumber
	r.s.users[user.ID] = current
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.s.users[userID] = u
	return nil
}

func (r *UserRepository) AddPassenger(_ context.Context, userID uuid.UUID, passenger domain.Passenger) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.SavedPassengers = append(append([]domain.Passenger(nil), u.SavedPassengers...), passenger)
	r.s.users[userID] = u
	return nil
}

func (r *UserRepository) DeletePassenger(_ context.Context, userID uuid.UUID, uid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}

	kept := make([]domain.Passenger, 0, len(u.SavedPassengers))
	for _, p := range u.SavedPassengers {
		if p.UID != uid {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(u.SavedPassengers) {
		return domain.ErrNotFound
	}

	u.SavedPassengers = kept
	r.s.users[userID] = u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, userID)

	kept := r.s.bookings[:0]
	for _, b := range r.s.bookings {
		if b.UserID != userID {
			kept = append(kept, b)
		}
	}
	r.s.bookings = kept
	return nil
}

func cloneUser(u domain.User) domain.User {
	u.SavedPassengers = append([]domain.Passenger(nil), u.SavedPassengers...)
	return u
}
