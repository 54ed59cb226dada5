package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
	"github.com/srgjo27/railway_reservation/internal/platform/auth"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

const recentBookingsLimit = 5

type SignupRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone" validate:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type PassengerRequest struct {
	Name            string `json:"passenger_name" validate:"required,max=100"`
	Age             int    `json:"passenger_age" validate:"gte=0,lte=125"`
	BerthPreference string `json:"berth_preference" validate:"omitempty,max=32"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone,omitempty"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ProfileResponse struct {
	User            UserResponse       `json:"user"`
	SavedPassengers []domain.Passenger `json:"saved_passengers"`
	RecentBookings  []BookingResponse  `json:"recent_bookings"`
}

type AccountService struct {
	users    ports.UserRepository
	bookings ports.BookingRepository
	cache    ports.SeatCache
	tokens   *auth.TokenIssuer
	hashCost int
	uids     intSource
	log      *logger.Logger
}

func NewAccountService(users ports.UserRepository, bookings ports.BookingRepository, cache ports.SeatCache, tokens *auth.TokenIssuer, log *logger.Logger) *AccountService {
	if log == nil {
		log = logger.Discard()
	}
	return &AccountService{
		users:    users,
		bookings: bookings,
		cache:    cache,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		uids:     globalIntSource{},
		log:      log.With("component", "account_service"),
	}
}

func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.newUser(req.Username, req.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	user.Email = strings.TrimSpace(req.Email)
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, apperror.Conflict("username already exists")
		}
		return nil, apperror.Internal("failed to create account", err)
	}

	s.log.Info("account created", "user_id", user.ID, "username", user.Username)
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, apperror.Internal("failed to load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      toUserResponse(user),
	}, nil
}

func (s *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.bookings.ListByUser(ctx, userID, recentBookingsLimit, 0)
	if err != nil {
		return nil, apperror.Internal("failed to load recent bookings", err)
	}

	resp := &ProfileResponse{
		User:            toUserResponse(user),
		SavedPassengers: user.SavedPassengers,
		RecentBookings:  make([]BookingResponse, 0, len(recent)),
	}
	if resp.SavedPassengers == nil {
		resp.SavedPassengers = []domain.Passenger{}
	}
	for _, b := range recent {
		resp.RecentBookings = append(resp.RecentBookings, toBookingResponse(b, b.Train))
	}
	return resp, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = strings.TrimSpace(req.Email)
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, apperror.Conflict("username already exists")
		}
		return nil, apperror.Internal("failed to update profile", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	user, err := s.get(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.InvalidInput("incorrect current password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return apperror.Internal("failed to update password", err)
	}
	return nil
}

func (s *AccountService) AddPassenger(ctx context.Context, userID uuid.UUID, req PassengerRequest) (*domain.Passenger, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	passenger := domain.Passenger{
		UID:             newPassengerUID(s.uids),
		Name:            req.Name,
		Age:             req.Age,
		BerthPreference: strings.TrimSpace(req.BerthPreference),
	}

	if err := s.users.AddPassenger(ctx, userID, passenger); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal("failed to save passenger", err)
	}
	return &passenger, nil
}

func (s *AccountService) DeletePassenger(ctx context.Context, userID uuid.UUID, uid string) error {
	if err := s.users.DeletePassenger(ctx, userID, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("passenger")
		}
		return apperror.Internal("failed to delete passenger", err)
	}
	return nil
}

// DeleteAccount removes the user's bookings and then the user. A booking
// that lands in between is removed along with the user.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	trainIDs, err := s.bookings.DeleteByUser(ctx, userID)
	if err != nil {
		return apperror.Internal("failed to delete bookings", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("user")
		}
		return apperror.Internal("failed to delete account", err)
	}

	if len(trainIDs) > 0 {
		if err := s.cache.Invalidate(ctx, trainIDs...); err != nil {
			s.log.Warn("failed to invalidate seat cache", "trains", len(trainIDs), "error", err)
		}
	}

	s.log.Info("account deleted", "user_id", userID, "bookings_on_trains", len(trainIDs))
	return nil
}

// EnsureAdmin creates the admin account when it does not exist yet.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	user, err := s.newUser(username, password, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AccountService) newUser(username, password, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}, nil
}

func (s *AccountService) get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal("failed to load account", err)
	}
	return user, nil
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Role:        u.Role,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}
