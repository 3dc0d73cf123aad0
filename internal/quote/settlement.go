package quote

import (
	"errors"
	"math"
	"time"
)

// Rental basis values accepted by the settlement estimator.
const (
	RentalStarting = "starting"
	RentalCurrent  = "current"
)

// avgMonth is the mean calendar month used to prorate the in-progress
// contract year.
const avgMonth = time.Duration(30.44 * 24 * float64(time.Hour))

// avgYear is the mean calendar year used to count completed escalation
// years when de-escalating a current rental.
const avgYear = time.Duration(365.25 * 24 * float64(time.Hour))

var (
	// ErrMissingStartDate is returned when the agreement start date is absent.
	ErrMissingStartDate = errors.New("settlement: start date is required")
	// ErrInvalidRental is returned when the rental amount is not a usable number.
	ErrInvalidRental = errors.New("settlement: rental amount must be a positive number")
	// ErrInvalidTerm is returned when the term is not a positive month count.
	ErrInvalidTerm = errors.New("settlement: term must be a positive number of months")
)

// SettlementInput describes the already-running rental agreement being
// rolled into the deal.
type SettlementInput struct {
	StartDate  time.Time
	Rental     float64
	Basis      string // RentalStarting or RentalCurrent
	Escalation float64 // annual escalation, percent
	TermMonths int
}

// YearLine is the contribution of one contract year to the settlement.
type YearLine struct {
	Year            int       `json:"year"`
	Amount          float64   `json:"amount"`
	MonthsRemaining int       `json:"monthsRemaining"`
	Completed       bool      `json:"completed"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
}

// SettlementResult carries the total early-settlement payout and its
// per-year breakdown.
type SettlementResult struct {
	Total float64    `json:"total"`
	Years []YearLine `json:"years"`
}

// EstimateSettlement computes the remaining contractual rental obligation of
// the agreement as of now. The term is covered by ceil(term/12) full
// calendar-year windows; a term that is not a multiple of 12 is not clamped
// to the exact month boundary, matching the established pricing behaviour.
// Escalation compounds once per contract year whether or not the year
// contributed.
func EstimateSettlement(now time.Time, in SettlementInput) (SettlementResult, error) {
	if in.StartDate.IsZero() {
		return SettlementResult{}, ErrMissingStartDate
	}
	if math.IsNaN(in.Rental) || math.IsInf(in.Rental, 0) || in.Rental <= 0 {
		return SettlementResult{}, ErrInvalidRental
	}
	if in.TermMonths <= 0 {
		return SettlementResult{}, ErrInvalidTerm
	}

	escalation := in.Escalation / 100
	rental := in.Rental

	// A current rental has already been escalated once per completed year;
	// walk it back to the starting figure before replaying the schedule.
	if in.Basis == RentalCurrent {
		completedYears := int(now.Sub(in.StartDate) / avgYear)
		for i := 0; i < completedYears; i++ {
			rental = rental / (1 + escalation)
		}
	}

	years := int(math.Ceil(float64(in.TermMonths) / 12))
	result := SettlementResult{Years: make([]YearLine, 0, years)}

	for year := 1; year <= years; year++ {
		windowStart := in.StartDate.AddDate(year-1, 0, 0)
		windowEnd := in.StartDate.AddDate(year, 0, 0)

		line := YearLine{Year: year, Start: windowStart, End: windowEnd}
		switch {
		case !now.Before(windowEnd):
			// Fully in the past: already paid.
			line.Completed = true
		case now.Before(windowStart):
			// Fully in the future: all twelve months are owed.
			line.MonthsRemaining = 12
			line.Amount = rental * 12
		default:
			// The current partial year: prorate by whole months left.
			line.MonthsRemaining = int(math.Ceil(float64(windowEnd.Sub(now)) / float64(avgMonth)))
			line.Amount = rental * float64(line.MonthsRemaining)
		}
		result.Total += line.Amount
		result.Years = append(result.Years, line)
		rental *= 1 + escalation
	}

	return result, nil
}
