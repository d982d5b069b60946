// Package ranking implements the listing browse pipeline: expiry exclusion,
// distance annotation, price normalization, filtering and sorting. It is a
// pure computation — the same input and clock always produce the same output —
// so it is safe to run concurrently and on every request.
package ranking

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/Priiiyaa/Gratify/internal/entity"
)

// EarthRadiusMiles is the radius used for great-circle distances.
const EarthRadiusMiles = 3959.0

type SortKey string

const (
	SortByPrice    SortKey = "price"
	SortByDistance SortKey = "distance"
)

// Sentinel filter values meaning "no filtering on this dimension".
const (
	DietaryNone = "None"
	CategoryAll = "All"
	PriceAll    = "All"
	PriceFree   = "Free"
	PricePaid   = "Paid"
)

// Params selects the ordering and the three conjunctive filters.
type Params struct {
	SortBy             SortKey
	DietaryRestriction string
	Category           string
	Price              string
}

// Item is one ranked listing with its derived fields. Distance is nil when
// either coordinate is missing or the computation is not finite; that sentinel
// is distinct from any numeric distance, including zero.
type Item struct {
	Food         entity.Food
	Distance     *float64
	NumericPrice float64
	IsExpired    bool
}

// Rank runs the full pipeline over foods as seen by a viewer at the given
// coordinate (nil when geolocation is unavailable). Expired listings are
// dropped outright; malformed listings degrade per-field instead of failing
// the computation.
func Rank(foods []entity.Food, viewer *entity.GeoPoint, now time.Time, p Params) []Item {
	items := make([]Item, 0, len(foods))
	for _, f := range foods {
		if f.IsExpired(now) {
			continue
		}
		items = append(items, Item{
			Food:         f,
			Distance:     distanceTo(viewer, f.Location),
			NumericPrice: NumericPrice(f.Price),
			IsExpired:    false,
		})
	}

	filtered := items[:0]
	for _, it := range items {
		if matches(it, p) {
			filtered = append(filtered, it)
		}
	}
	items = filtered

	switch p.SortBy {
	case SortByPrice:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].NumericPrice < items[j].NumericPrice
		})
	case SortByDistance:
		sort.SliceStable(items, func(i, j int) bool {
			return lessByDistance(items[i].Distance, items[j].Distance)
		})
	}
	return items
}

// NumericPrice normalizes the stored price string. "0" is the free sentinel;
// anything unparseable also normalizes to 0, so malformed listings rank as free.
func NumericPrice(price string) float64 {
	if price == "0" {
		return 0
	}
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Haversine returns the great-circle distance between two points in miles,
// rounded to a tenth of a mile for display.
func Haversine(a, b entity.GeoPoint) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(EarthRadiusMiles*c*10) / 10
}

func distanceTo(viewer, loc *entity.GeoPoint) *float64 {
	if viewer == nil || loc == nil {
		return nil
	}
	d := Haversine(*viewer, *loc)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return nil
	}
	return &d
}

func matches(it Item, p Params) bool {
	if p.DietaryRestriction != "" && p.DietaryRestriction != DietaryNone &&
		it.Food.DietryRestric != p.DietaryRestriction {
		return false
	}
	if p.Category != "" && p.Category != CategoryAll && it.Food.Category != p.Category {
		return false
	}
	switch p.Price {
	case PriceFree:
		return it.NumericPrice == 0
	case PricePaid:
		return it.NumericPrice > 0
	}
	return true
}

// lessByDistance orders known distances ascending and places unknown distances
// after every known one. Two unknowns compare equal so the stable sort keeps
// their prior order.
func lessByDistance(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}
