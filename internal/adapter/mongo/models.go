package mongo

import (
	"fmt"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document structs mirror the stored shape; converters keep the entity layer
// free of bson concerns.

type geoPointDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type addressDocument struct {
	Street   string            `bson:"street,omitempty"`
	City     string            `bson:"city,omitempty"`
	State    string            `bson:"state,omitempty"`
	ZipCode  string            `bson:"zipCode,omitempty"`
	Location *geoPointDocument `bson:"location,omitempty"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UID          string             `bson:"uid"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty"`
	Address      addressDocument    `bson:"address,omitempty"`
	Role         string             `bson:"role,omitempty"`
	Category     string             `bson:"category,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty"`
	Rating       string             `bson:"rating,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    primitive.ObjectID `bson:"user"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type foodDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        primitive.ObjectID `bson:"user"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Quantity      string             `bson:"quantity"`
	Category      string             `bson:"category"`
	Location      *geoPointDocument  `bson:"location,omitempty"`
	ImageURL      string             `bson:"imageURL,omitempty"`
	IsUrgent      bool               `bson:"isUrgent"`
	DietryRestric string             `bson:"dietryRestric"`
	Price         string             `bson:"price"`
	Unit          string             `bson:"unit"`
	ExpiresAt     time.Time          `bson:"expiresAt"`
	Comments      []commentDocument  `bson:"comments"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

type reservationDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FoodID    primitive.ObjectID `bson:"food"`
	UserID    primitive.ObjectID `bson:"user"`
	Location  string             `bson:"location"`
	DateTime  time.Time          `bson:"dateTime"`
	Quantity  int                `bson:"quantity"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type badgeDocument struct {
	Title string `bson:"title"`
}

type userStatsDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"user"`
	TotalDonations int                `bson:"totalDonations"`
	TotalClaims    int                `bson:"totalClaims"`
	Badges         []badgeDocument    `bson:"badges"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func objectIDFromHex(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid ID format '%s': %w", id, err)
	}
	return objID, nil
}

func toGeoPointDocument(p *entity.GeoPoint) *geoPointDocument {
	if p == nil {
		return nil
	}
	return &geoPointDocument{Lat: p.Lat, Lng: p.Lng}
}

func toGeoPointEntity(d *geoPointDocument) *entity.GeoPoint {
	if d == nil {
		return nil
	}
	return &entity.GeoPoint{Lat: d.Lat, Lng: d.Lng}
}

func toUserDocument(u *entity.User) (*userDocument, error) {
	doc := &userDocument{
		UID:         u.UID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address: addressDocument{
			Street:   u.Address.Street,
			City:     u.Address.City,
			State:    u.Address.State,
			ZipCode:  u.Address.ZipCode,
			Location: toGeoPointDocument(u.Address.Location),
		},
		Role:         u.Role,
		Category:     u.Category,
		ProfileImage: u.ProfileImage,
		Rating:       u.Rating,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.ID != "" {
		objID, err := objectIDFromHex(u.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = objID
	}
	return doc, nil
}

func toUserEntity(d *userDocument) *entity.User {
	return &entity.User{
		ID:          d.ID.Hex(),
		UID:         d.UID,
		Name:        d.Name,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Address: entity.Address{
			Street:   d.Address.Street,
			City:     d.Address.City,
			State:    d.Address.State,
			ZipCode:  d.Address.ZipCode,
			Location: toGeoPointEntity(d.Address.Location),
		},
		Role:         d.Role,
		Category:     d.Category,
		ProfileImage: d.ProfileImage,
		Rating:       d.Rating,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toCommentDocument(c entity.Comment) (commentDocument, error) {
	doc := commentDocument{
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	userID, err := objectIDFromHex(c.UserID)
	if err != nil {
		return commentDocument{}, err
	}
	doc.UserID = userID
	if c.ID != "" {
		objID, err := objectIDFromHex(c.ID)
		if err != nil {
			return commentDocument{}, err
		}
		doc.ID = objID
	} else {
		doc.ID = primitive.NewObjectID()
	}
	return doc, nil
}

func toCommentEntity(d commentDocument) entity.Comment {
	return entity.Comment{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}

func toFoodDocument(f *entity.Food) (*foodDocument, error) {
	userID, err := objectIDFromHex(f.UserID)
	if err != nil {
		return nil, err
	}
	comments := make([]commentDocument, 0, len(f.Comments))
	for _, c := range f.Comments {
		doc, err := toCommentDocument(c)
		if err != nil {
			return nil, err
		}
		comments = append(comments, doc)
	}
	doc := &foodDocument{
		UserID:        userID,
		Title:         f.Title,
		Description:   f.Description,
		Quantity:      f.Quantity,
		Category:      f.Category,
		Location:      toGeoPointDocument(f.Location),
		ImageURL:      f.ImageURL,
		IsUrgent:      f.IsUrgent,
		DietryRestric: f.DietryRestric,
		Price:         f.Price,
		Unit:          f.Unit,
		ExpiresAt:     f.ExpiresAt,
		Comments:      comments,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	if f.ID != "" {
		objID, err := objectIDFromHex(f.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = objID
	}
	return doc, nil
}

func toFoodEntity(d *foodDocument) *entity.Food {
	comments := make([]entity.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, toCommentEntity(c))
	}
	return &entity.Food{
		ID:            d.ID.Hex(),
		UserID:        d.UserID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Quantity:      d.Quantity,
		Category:      d.Category,
		Location:      toGeoPointEntity(d.Location),
		ImageURL:      d.ImageURL,
		IsUrgent:      d.IsUrgent,
		DietryRestric: d.DietryRestric,
		Price:         d.Price,
		Unit:          d.Unit,
		ExpiresAt:     d.ExpiresAt,
		Comments:      comments,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toReservationDocument(r *entity.Reservation) (*reservationDocument, error) {
	foodID, err := objectIDFromHex(r.FoodID)
	if err != nil {
		return nil, err
	}
	userID, err := objectIDFromHex(r.UserID)
	if err != nil {
		return nil, err
	}
	doc := &reservationDocument{
		FoodID:    foodID,
		UserID:    userID,
		Location:  r.Location,
		DateTime:  r.DateTime,
		Quantity:  r.Quantity,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ID != "" {
		objID, err := objectIDFromHex(r.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = objID
	}
	return doc, nil
}

func toReservationEntity(d *reservationDocument) *entity.Reservation {
	return &entity.Reservation{
		ID:        d.ID.Hex(),
		FoodID:    d.FoodID.Hex(),
		UserID:    d.UserID.Hex(),
		Location:  d.Location,
		DateTime:  d.DateTime,
		Quantity:  d.Quantity,
		Status:    entity.ReservationStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toUserStatsDocument(s *entity.UserStats) (*userStatsDocument, error) {
	userID, err := objectIDFromHex(s.UserID)
	if err != nil {
		return nil, err
	}
	badges := make([]badgeDocument, 0, len(s.Badges))
	for _, b := range s.Badges {
		badges = append(badges, badgeDocument{Title: b.Title})
	}
	doc := &userStatsDocument{
		UserID:         userID,
		TotalDonations: s.TotalDonations,
		TotalClaims:    s.TotalClaims,
		Badges:         badges,
		CreatedAt:      s.CreatedAt,
	}
	if s.ID != "" {
		objID, err := objectIDFromHex(s.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = objID
	}
	return doc, nil
}

func toUserStatsEntity(d *userStatsDocument) *entity.UserStats {
	badges := make([]entity.Badge, 0, len(d.Badges))
	for _, b := range d.Badges {
		badges = append(badges, entity.Badge{Title: b.Title})
	}
	return &entity.UserStats{
		ID:             d.ID.Hex(),
		UserID:         d.UserID.Hex(),
		TotalDonations: d.TotalDonations,
		TotalClaims:    d.TotalClaims,
		Badges:         badges,
		CreatedAt:      d.CreatedAt,
	}
}
