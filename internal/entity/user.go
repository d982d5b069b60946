package entity

import "time"

// User is the profile record backing an external identity. UID is the stable
// identifier issued by the identity provider; ID is the internal document id.
type User struct {
	ID           string
	UID          string
	Name         string
	Email        string
	PhoneNumber  string
	Address      Address
	Role         string
	Category     string
	ProfileImage string
	Rating       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Address struct {
	Street   string
	City     string
	State    string
	ZipCode  string
	Location *GeoPoint
}

type GeoPoint struct {
	Lat float64
	Lng float64
}
