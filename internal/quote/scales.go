package quote

import (
	"fmt"
)

// DefaultFactor is the rental factor applied when the factor table has no
// entry for the requested term/escalation/finance-range combination. The
// calculator always produces a figure; a missing table entry degrades to
// this constant instead of failing.
const DefaultFactor = 0.03

// CountBuckets enumerates the extension-count tiers used by the
// installation and gross-profit scales, in ascending order.
var CountBuckets = []string{"0-4", "5-8", "9-16", "17-32", "33+"}

// AmountBuckets enumerates the finance-amount tiers of the finance-fee scale.
var AmountBuckets = []string{"0-20000", "20001-50000", "50001-100000", "100001+"}

// FactorRanges enumerates the finance-range keys of the factor table. The
// top bucket is spelled "100000+" rather than the finance-fee scale's
// "100001+"; the two partitions are distinct in the pricing sheets and must
// not be unified.
var FactorRanges = []string{"0-20000", "20001-50000", "50001-100000", "100000+"}

// Scale maps tier keys to currency values.
type Scale map[string]float64

// AdditionalCosts holds the flat per-unit installation rates.
type AdditionalCosts struct {
	CostPerKilometer float64 `json:"cost_per_kilometer"`
	CostPerPoint     float64 `json:"cost_per_point"`
}

// Scales bundles the admin-configured pricing tables consumed by the
// calculator.
type Scales struct {
	Installation    Scale           `json:"installation"`
	FinanceFee      Scale           `json:"finance_fee"`
	GrossProfit     Scale           `json:"gross_profit"`
	AdditionalCosts AdditionalCosts `json:"additional_costs"`
}

// FactorTable maps term key -> escalation key -> finance-range key to a
// monthly rental factor, e.g. factors["60_months"]["0%"]["20001-50000"].
type FactorTable map[string]map[string]map[string]float64

// scaleForCount resolves an extension count against the count-tier buckets.
// Boundary values fall into the lower bucket; the final bucket is open-ended
// so the lookup is total over non-negative counts.
func scaleForCount(count int, s Scale) float64 {
	switch {
	case count <= 4:
		return s["0-4"]
	case count <= 8:
		return s["5-8"]
	case count <= 16:
		return s["9-16"]
	case count <= 32:
		return s["17-32"]
	default:
		return s["33+"]
	}
}

// InstallationFor returns the tiered installation charge for the given
// extension count.
func (s Scales) InstallationFor(extensions int) float64 {
	return scaleForCount(extensions, s.Installation)
}

// GrossProfitFor returns the tiered base gross profit for the given
// extension count.
func (s Scales) GrossProfitFor(extensions int) float64 {
	return scaleForCount(extensions, s.GrossProfit)
}

// FinanceFeeFor returns the finance fee tier matching the provided amount.
func (s Scales) FinanceFeeFor(amount float64) float64 {
	switch {
	case amount <= 20000:
		return s.FinanceFee["0-20000"]
	case amount <= 50000:
		return s.FinanceFee["20001-50000"]
	case amount <= 100000:
		return s.FinanceFee["50001-100000"]
	default:
		return s.FinanceFee["100001+"]
	}
}

// TermKey renders a term in months as a factor-table key, e.g. "60_months".
func TermKey(termMonths int) string {
	return fmt.Sprintf("%d_months", termMonths)
}

// EscalationKey renders an escalation percentage as a factor-table key,
// e.g. "10%".
func EscalationKey(escalation int) string {
	return fmt.Sprintf("%d%%", escalation)
}

// FinanceRangeKey resolves a finance amount to its factor-table range key.
func FinanceRangeKey(amount float64) string {
	switch {
	case amount > 100000:
		return "100000+"
	case amount > 50000:
		return "50001-100000"
	case amount > 20000:
		return "20001-50000"
	default:
		return "0-20000"
	}
}

// FactorFor looks up the rental factor for the given term, escalation and
// finance amount. A missing key at any level yields DefaultFactor; an
// uninitialised table is valid input.
func (f FactorTable) FactorFor(termMonths, escalation int, financeAmount float64) float64 {
	byEscalation, ok := f[TermKey(termMonths)]
	if !ok {
		return DefaultFactor
	}
	byRange, ok := byEscalation[EscalationKey(escalation)]
	if !ok {
		return DefaultFactor
	}
	factor, ok := byRange[FinanceRangeKey(financeAmount)]
	if !ok {
		return DefaultFactor
	}
	return factor
}

// Validate reports the first missing bucket in any of the tiered scales.
// Tables are checked once when loaded or updated so an incomplete sheet is
// rejected up front rather than silently defaulting inside a calculation.
func (s Scales) Validate() error {
	for _, key := range CountBuckets {
		if _, ok := s.Installation[key]; !ok {
			return fmt.Errorf("installation scale: missing bucket %q", key)
		}
		if _, ok := s.GrossProfit[key]; !ok {
			return fmt.Errorf("gross profit scale: missing bucket %q", key)
		}
	}
	for _, key := range AmountBuckets {
		if _, ok := s.FinanceFee[key]; !ok {
			return fmt.Errorf("finance fee scale: missing bucket %q", key)
		}
	}
	if s.AdditionalCosts.CostPerKilometer < 0 || s.AdditionalCosts.CostPerPoint < 0 {
		return fmt.Errorf("additional costs must be non-negative")
	}
	return nil
}

// Validate checks that every term/escalation leaf of the table carries the
// full finance-range key set. An empty table is valid; lookups against it
// resolve to DefaultFactor.
func (f FactorTable) Validate() error {
	for termKey, byEscalation := range f {
		for escalationKey, byRange := range byEscalation {
			for _, rangeKey := range FactorRanges {
				if _, ok := byRange[rangeKey]; !ok {
					return fmt.Errorf("factors[%s][%s]: missing range %q", termKey, escalationKey, rangeKey)
				}
			}
		}
	}
	return nil
}
