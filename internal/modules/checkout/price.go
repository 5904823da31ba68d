package checkout

import (
	"math"
	"strings"
	"time"

	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
)

const day = 24 * time.Hour

var (
	ErrInvalidPrice = apperr.New(apperr.ErrInvalidInput, "invalid car price")
	ErrInvalidDates = apperr.New(apperr.ErrInvalidInput, "invalid pickup or dropoff date")
	ErrDateOrder    = apperr.New(apperr.ErrInvalidInput, "dropoff date must not be before pickup date")
)

// parseDate accepts YYYY-MM-DD and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// RentalDays is the number of whole days charged for the range, rounded up,
// with a minimum of one day.
func RentalDays(pickupDate, dropoffDate string) (int, error) {
	pickup, err := parseDate(pickupDate)
	if err != nil {
		return 0, ErrInvalidDates
	}
	dropoff, err := parseDate(dropoffDate)
	if err != nil {
		return 0, ErrInvalidDates
	}

	d := dropoff.Sub(pickup)
	if d < 0 {
		return 0, ErrDateOrder
	}
	days := int(math.Ceil(float64(d) / float64(day)))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// CalculateTotal returns dailyPrice times the charged days, in major units
// rounded to cents.
func CalculateTotal(dailyPrice float64, pickupDate, dropoffDate string) (float64, error) {
	if math.IsNaN(dailyPrice) || math.IsInf(dailyPrice, 0) || dailyPrice <= 0 {
		return 0, ErrInvalidPrice
	}
	days, err := RentalDays(pickupDate, dropoffDate)
	if err != nil {
		return 0, err
	}

	total := dailyPrice * float64(days)
	return math.Round(total*100) / 100, nil
}

// ToMinorUnits converts a major unit amount to cents.
func ToMinorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}
