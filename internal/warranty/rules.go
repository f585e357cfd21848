// Package warranty computes warranty windows and claim-relevant status from
// static per-brand policy data.
package warranty

import (
	"fmt"
	"math"
	"time"
)

// Status of a warranty relative to now
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// Calculation is the derived warranty window for one purchase
type Calculation struct {
	WarrantyEndDate time.Time `json:"warranty_end_date"`
	DurationYears   int       `json:"duration_years"`
	Warnings        []string  `json:"warnings"`
}

const (
	defaultDurationYears    = 3
	registrationWindowDays  = 30
	expiringThresholdDays   = 30
	batteryWarrantyYears    = 2
	makitaRegisteredYears   = 3
	makitaUnregisteredYears = 1
	husqvarnaExtendedYears  = 5
)

// Calculate derives the warranty end date and duration for a purchase.
// Brand-specific rules:
//   - Milwaukee batteries carry the shorter REDLITHIUM battery warranty.
//   - Makita gives 3 years only when the tool is registered; an unregistered
//     purchase gets 1 year, with a warning while the 30-day registration
//     window is still open.
//   - Husqvarna extends from 2 to 5 years when registered within 30 days.
//
// Unknown brands get the default duration. Calculate never fails.
func Calculate(brandID, category string, purchaseDate time.Time, isRegistered bool, now time.Time) Calculation {
	years := defaultDurationYears
	if p, ok := policies[brandID]; ok {
		years = p.DurationYears
	}

	warnings := []string{}

	switch brandID {
	case "milwaukee":
		if category == "battery" {
			years = batteryWarrantyYears
		}
	case "makita":
		if isRegistered {
			years = makitaRegisteredYears
		} else {
			years = makitaUnregisteredYears
			if days := registrationDaysLeft(purchaseDate, now); days > 0 {
				warnings = append(warnings, fmt.Sprintf("%d days left to register on MyMakita for the 3-year warranty", days))
			}
		}
	case "husqvarna":
		if isRegistered {
			years = husqvarnaExtendedYears
		} else if days := registrationDaysLeft(purchaseDate, now); days > 0 {
			warnings = append(warnings, fmt.Sprintf("Register online within %d days to extend the warranty to 5 years", days))
		}
	}

	return Calculation{
		WarrantyEndDate: purchaseDate.AddDate(years, 0, 0),
		DurationYears:   years,
		Warnings:        warnings,
	}
}

// registrationDaysLeft returns the whole days remaining in the registration
// window, rounded up, or zero when the window has closed.
func registrationDaysLeft(purchaseDate, now time.Time) int {
	deadline := purchaseDate.Add(registrationWindowDays * 24 * time.Hour)
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// StatusOf derives the warranty status from the end date:
// expired when past, expiring within 30 days, active otherwise.
func StatusOf(endDate, now time.Time) Status {
	daysLeft := DaysRemaining(endDate, now)
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= expiringThresholdDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// DaysRemaining returns whole days until the end date, negative once past
func DaysRemaining(endDate, now time.Time) int {
	return int(endDate.Sub(now).Hours() / 24)
}

// Remaining renders a human-readable summary of the time left on a warranty
func Remaining(endDate, now time.Time) string {
	if !endDate.After(now) {
		return "Expired"
	}

	months := 0
	for !now.AddDate(0, months+1, 0).After(endDate) {
		months++
	}

	years := months / 12
	rem := months % 12

	switch {
	case years > 0 && rem > 0:
		return fmt.Sprintf("%dy %dm remaining", years, rem)
	case years > 0:
		return fmt.Sprintf("%dy remaining", years)
	case months > 0:
		return fmt.Sprintf("%dm remaining", months)
	default:
		return fmt.Sprintf("%dd remaining", DaysRemaining(endDate, now))
	}
}
