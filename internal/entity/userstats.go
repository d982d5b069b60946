package entity

import "time"

// UserStats tracks contribution totals for one user. Created explicitly, not
// as a side effect of user creation.
type UserStats struct {
	ID             string
	UserID         string
	User           *User // populated on reads
	TotalDonations int
	TotalClaims    int
	Badges         []Badge
	CreatedAt      time.Time
}

type Badge struct {
	Title string
}

// Points is the leaderboard score: donations weigh double claims.
func (s *UserStats) Points() int {
	return 10*s.TotalDonations + 5*s.TotalClaims
}
