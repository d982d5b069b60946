package handler

import (
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/ranking"
)

// Wire shapes mirror the stored document field names so existing clients keep
// working unchanged.

type geoPointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressDTO struct {
	Street   string       `json:"street,omitempty"`
	City     string       `json:"city,omitempty"`
	State    string       `json:"state,omitempty"`
	ZipCode  string       `json:"zipCode,omitempty"`
	Location *geoPointDTO `json:"location,omitempty"`
}

type userDTO struct {
	ID           string     `json:"_id"`
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	Address      addressDTO `json:"address"`
	Role         string     `json:"role,omitempty"`
	Category     string     `json:"category,omitempty"`
	ProfileImage string     `json:"profileImage,omitempty"`
	Rating       string     `json:"rating,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type commentDTO struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// foodDTO.User carries the populated owner object when resolution succeeded
// and falls back to the raw id otherwise.
type foodDTO struct {
	ID            string       `json:"_id"`
	User          interface{}  `json:"user"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Quantity      string       `json:"quantity,omitempty"`
	Category      string       `json:"category,omitempty"`
	Location      *geoPointDTO `json:"location"`
	ImageURL      string       `json:"imageURL,omitempty"`
	IsUrgent      bool         `json:"isUrgent"`
	DietryRestric string       `json:"dietryRestric,omitempty"`
	Price         string       `json:"price"`
	Unit          string       `json:"unit,omitempty"`
	ExpiresAt     time.Time    `json:"expiresAt"`
	Comments      []commentDTO `json:"comments"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type rankedFoodDTO struct {
	foodDTO
	Distance     *float64 `json:"distance"`
	NumericPrice float64  `json:"numericPrice"`
	IsExpired    bool     `json:"isExpired"`
}

type reservationDTO struct {
	ID        string      `json:"_id"`
	Food      interface{} `json:"food"`
	User      interface{} `json:"user"`
	Location  string      `json:"location"`
	DateTime  time.Time   `json:"dateTime"`
	Quantity  int         `json:"quantity"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type badgeDTO struct {
	Title string `json:"title"`
}

type userStatsDTO struct {
	ID             string      `json:"_id"`
	User           interface{} `json:"user"`
	TotalDonations int         `json:"totalDonations"`
	TotalClaims    int         `json:"totalClaims"`
	Badges         []badgeDTO  `json:"badges"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func toGeoPointDTO(p *entity.GeoPoint) *geoPointDTO {
	if p == nil {
		return nil
	}
	return &geoPointDTO{Lat: p.Lat, Lng: p.Lng}
}

func toGeoPointEntity(p *geoPointDTO) *entity.GeoPoint {
	if p == nil {
		return nil
	}
	return &entity.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

func toAddressDTO(a entity.Address) addressDTO {
	return addressDTO{
		Street:   a.Street,
		City:     a.City,
		State:    a.State,
		ZipCode:  a.ZipCode,
		Location: toGeoPointDTO(a.Location),
	}
}

func toAddressEntity(a addressDTO) entity.Address {
	return entity.Address{
		Street:   a.Street,
		City:     a.City,
		State:    a.State,
		ZipCode:  a.ZipCode,
		Location: toGeoPointEntity(a.Location),
	}
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		ID:           u.ID,
		UID:          u.UID,
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		Address:      toAddressDTO(u.Address),
		Role:         u.Role,
		Category:     u.Category,
		ProfileImage: u.ProfileImage,
		Rating:       u.Rating,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserDTOs(users []*entity.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

func toCommentDTOs(comments []entity.Comment) []commentDTO {
	out := make([]commentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentDTO{
			ID:        c.ID,
			User:      c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func toFoodDTO(f *entity.Food) foodDTO {
	var user interface{} = f.UserID
	if f.Owner != nil {
		user = toUserDTO(f.Owner)
	}
	return foodDTO{
		ID:            f.ID,
		User:          user,
		Title:         f.Title,
		Description:   f.Description,
		Quantity:      f.Quantity,
		Category:      f.Category,
		Location:      toGeoPointDTO(f.Location),
		ImageURL:      f.ImageURL,
		IsUrgent:      f.IsUrgent,
		DietryRestric: f.DietryRestric,
		Price:         f.Price,
		Unit:          f.Unit,
		ExpiresAt:     f.ExpiresAt,
		Comments:      toCommentDTOs(f.Comments),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toFoodDTOs(foods []*entity.Food) []foodDTO {
	out := make([]foodDTO, 0, len(foods))
	for _, f := range foods {
		out = append(out, toFoodDTO(f))
	}
	return out
}

func toRankedFoodDTOs(items []ranking.Item) []rankedFoodDTO {
	out := make([]rankedFoodDTO, 0, len(items))
	for _, it := range items {
		f := it.Food
		out = append(out, rankedFoodDTO{
			foodDTO:      toFoodDTO(&f),
			Distance:     it.Distance,
			NumericPrice: it.NumericPrice,
			IsExpired:    it.IsExpired,
		})
	}
	return out
}

func toReservationDTO(r *entity.Reservation) reservationDTO {
	var food interface{} = r.FoodID
	if r.Food != nil {
		food = toFoodDTO(r.Food)
	}
	var user interface{} = r.UserID
	if r.User != nil {
		user = toUserDTO(r.User)
	}
	return reservationDTO{
		ID:        r.ID,
		Food:      food,
		User:      user,
		Location:  r.Location,
		DateTime:  r.DateTime,
		Quantity:  r.Quantity,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReservationDTOs(reservations []*entity.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationDTO(r))
	}
	return out
}

func toBadgeDTOs(badges []entity.Badge) []badgeDTO {
	out := make([]badgeDTO, 0, len(badges))
	for _, b := range badges {
		out = append(out, badgeDTO{Title: b.Title})
	}
	return out
}

func toBadgeEntities(badges []badgeDTO) []entity.Badge {
	out := make([]entity.Badge, 0, len(badges))
	for _, b := range badges {
		out = append(out, entity.Badge{Title: b.Title})
	}
	return out
}

func toUserStatsDTO(s *entity.UserStats) userStatsDTO {
	var user interface{} = s.UserID
	if s.User != nil {
		user = toUserDTO(s.User)
	}
	return userStatsDTO{
		ID:             s.ID,
		User:           user,
		TotalDonations: s.TotalDonations,
		TotalClaims:    s.TotalClaims,
		Badges:         toBadgeDTOs(s.Badges),
		CreatedAt:      s.CreatedAt,
	}
}

func toUserStatsDTOs(stats []*entity.UserStats) []userStatsDTO {
	out := make([]userStatsDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, toUserStatsDTO(s))
	}
	return out
}
