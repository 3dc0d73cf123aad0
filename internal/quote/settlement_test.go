package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEstimateSettlementAtStart(t *testing.T) {
	start := date(2022, time.January, 1)
	result, err := EstimateSettlement(start, SettlementInput{
		StartDate:  start,
		Rental:     1000,
		Basis:      RentalStarting,
		Escalation: 0,
		TermMonths: 60,
	})
	require.NoError(t, err)
	require.Len(t, result.Years, 5)
	// Nothing paid yet: the full five years are owed.
	require.Equal(t, 60000.0, result.Total)
}

func TestEstimateSettlementAfterContractEnd(t *testing.T) {
	start := date(2018, time.March, 1)
	result, err := EstimateSettlement(date(2026, time.June, 1), SettlementInput{
		StartDate:  start,
		Rental:     750,
		Basis:      RentalStarting,
		Escalation: 10,
		TermMonths: 60,
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, result.Total)
	for _, line := range result.Years {
		require.True(t, line.Completed)
		require.Equal(t, 0.0, line.Amount)
	}
}

func TestEstimateSettlementPartialYear(t *testing.T) {
	start := date(2022, time.January, 1)
	now := date(2024, time.July, 1)
	result, err := EstimateSettlement(now, SettlementInput{
		StartDate:  start,
		Rental:     1000,
		Basis:      RentalStarting,
		Escalation: 10,
		TermMonths: 36,
	})
	require.NoError(t, err)
	require.Len(t, result.Years, 3)

	require.True(t, result.Years[0].Completed)
	require.True(t, result.Years[1].Completed)

	// 2024-07-01 .. 2025-01-01 is 184 days, which prorates to 7 average
	// months. The rental has escalated twice by year three.
	line := result.Years[2]
	require.False(t, line.Completed)
	require.Equal(t, 7, line.MonthsRemaining)
	require.InDelta(t, 1210*7, line.Amount, 1e-6)
	require.InDelta(t, 1210*7, result.Total, 1e-6)
}

func TestEstimateSettlementCurrentBasisDeEscalates(t *testing.T) {
	start := date(2020, time.January, 1)
	now := date(2022, time.June, 15)
	input := SettlementInput{
		StartDate:  start,
		Rental:     1000,
		Basis:      RentalStarting,
		Escalation: 10,
		TermMonths: 60,
	}
	fromStarting, err := EstimateSettlement(now, input)
	require.NoError(t, err)

	// Two contract years have completed, so the current rental is the
	// starting figure escalated twice.
	input.Rental = 1000 * 1.1 * 1.1
	input.Basis = RentalCurrent
	fromCurrent, err := EstimateSettlement(now, input)
	require.NoError(t, err)

	require.InDelta(t, fromStarting.Total, fromCurrent.Total, 1e-6)
}

func TestEstimateSettlementShortTermStillCoversFullYears(t *testing.T) {
	// A 50 month term produces five full-year windows; the final window is
	// not clamped to the 50 month boundary.
	start := date(2022, time.January, 1)
	result, err := EstimateSettlement(start, SettlementInput{
		StartDate:  start,
		Rental:     100,
		Basis:      RentalStarting,
		Escalation: 0,
		TermMonths: 50,
	})
	require.NoError(t, err)
	require.Len(t, result.Years, 5)
	require.Equal(t, 6000.0, result.Total)
}

func TestEstimateSettlementInvalidInput(t *testing.T) {
	now := date(2024, time.January, 1)

	_, err := EstimateSettlement(now, SettlementInput{Rental: 100, TermMonths: 36})
	require.ErrorIs(t, err, ErrMissingStartDate)

	_, err = EstimateSettlement(now, SettlementInput{StartDate: now, Rental: 0, TermMonths: 36})
	require.ErrorIs(t, err, ErrInvalidRental)

	_, err = EstimateSettlement(now, SettlementInput{StartDate: now, Rental: 100})
	require.ErrorIs(t, err, ErrInvalidTerm)
}
