// Package pricing holds the offer rules shared by product writes, catalog
// reads, order snapshots and the admin price preview.
package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOffer = errors.New("offer must be between 0 and 99")
	ErrOfferWindow  = errors.New("offer start date must be before end date")
	ErrOfferDates   = errors.New("offer start and end dates are required when an offer is set")
)

// OfferPrice returns price minus offer percent, rounded to cents. It is nil
// when there is no usable offer (absent, zero, negative or >= 100).
func OfferPrice(price float64, offer *float64) *float64 {
	if offer == nil || *offer <= 0 || *offer >= 100 {
		return nil
	}

	p := decimal.NewFromFloat(price)
	discount := p.Mul(decimal.NewFromFloat(*offer)).Div(decimal.NewFromInt(100))
	value, _ := p.Sub(discount).Round(2).Float64()
	return &value
}

// IsActive reports whether an offer applies at now. Both window bounds are
// inclusive and must be present.
func IsActive(offerPrice *float64, start, end *time.Time, now time.Time) bool {
	if offerPrice == nil || *offerPrice <= 0 {
		return false
	}
	if start == nil || end == nil {
		return false
	}
	return !now.Before(*start) && !now.After(*end)
}

// EffectivePrice is the unit price a customer pays at now.
func EffectivePrice(price float64, offerPrice *float64, start, end *time.Time, now time.Time) float64 {
	if IsActive(offerPrice, start, end, now) {
		return *offerPrice
	}
	return price
}

// ValidateOffer checks an offer percentage together with its window.
func ValidateOffer(offer *float64, start, end *time.Time) error {
	if offer == nil || *offer == 0 {
		return nil
	}
	if *offer < 0 || *offer >= 100 {
		return ErrInvalidOffer
	}
	if start == nil || end == nil {
		return ErrOfferDates
	}
	if !start.Before(*end) {
		return ErrOfferWindow
	}
	return nil
}

// Total sums unit prices times quantities plus a fee, rounded to cents.
func Total(lines []Line, fee float64) float64 {
	sum := decimal.NewFromFloat(fee)
	for _, line := range lines {
		sum = sum.Add(decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	value, _ := sum.Round(2).Float64()
	return value
}

type Line struct {
	UnitPrice float64
	Quantity  int
}
