package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID              uuid.UUID
	Username        string
	PasswordHash    string
	Role            string
	Email           string
	PhoneNumber     string
	SavedPassengers []Passenger
	CreatedAt       time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassenger reports whether a saved passenger with the same name and age exists.
func (u *User) HasPassenger(name string, age int) bool {
	for _, p := range u.SavedPassengers {
		if p.Name == name && p.Age == age {
			return true
		}
	}
	return false
}

// Passenger is a traveller saved on a user's profile for quick booking.
type Passenger struct {
	UID             string `json:"uid"`
	Name            string `json:"name"`
	Age             int    `json:"age"`
	BerthPreference string `json:"berth_preference,omitempty"`
}
