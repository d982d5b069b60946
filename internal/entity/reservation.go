package entity

import "time"

type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "Reserved"
	StatusCompleted ReservationStatus = "Completed"
	StatusCancelled ReservationStatus = "Cancelled"
)

// ValidReservationStatus reports whether s is a member of the status enum.
// No transition rules are enforced beyond membership.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case StatusReserved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Reservation is a claim by a user against a listing. Food and User existence
// is re-validated on every create and update, not assumed.
type Reservation struct {
	ID        string
	FoodID    string
	Food      *Food // populated on reads
	UserID    string
	User      *User // populated on reads
	Location  string
	DateTime  time.Time
	Quantity  int
	Status    ReservationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
