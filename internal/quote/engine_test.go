package quote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scenarioSession() Session {
	session := NewSession()
	session.UpsertItem(SectionHardware, Item{ID: "ext-handset", Name: "Handset", Cost: 1000, Quantity: 5, IsExtension: true})
	session.DealDetails.DistanceToInstall = 10
	session.DealDetails.Term = 60
	session.DealDetails.Escalation = 0
	return session
}

func scenarioScales() Scales {
	scales := DefaultScales()
	scales.Installation["5-8"] = 3500
	scales.GrossProfit["5-8"] = 20000
	scales.FinanceFee["20001-50000"] = 1000
	return scales
}

func TestComputeDerivationChain(t *testing.T) {
	summary := Compute(scenarioSession(), scenarioScales(), DefaultFactors())

	require.Equal(t, 5, summary.ExtensionCount)
	require.Equal(t, 5000.0, summary.HardwareTotal)
	// 5000 hardware + 3500 installation + 150 distance + 1250 extension points
	require.Equal(t, 9900.0, summary.HardwareInstallTotal)
	require.Equal(t, 20000.0, summary.BaseGrossProfit)
	require.Equal(t, 20000.0, summary.TotalGrossProfit)
	// 9900 + 20000 = 29900 lands in the 20001-50000 fee bucket.
	require.Equal(t, 1000.0, summary.FinanceFee)
	require.Equal(t, 30900.0, summary.FinanceAmount)
	require.Equal(t, summary.FinanceAmount, summary.TotalPayout)
	// 30900 banded into 20001-50000 at 60 months, 0% escalation. The
	// expectation is computed at runtime so it carries the same float64
	// rounding as the engine's own product.
	require.Equal(t, 0.02565, summary.FactorUsed)
	require.Equal(t, summary.TotalPayout*summary.FactorUsed, summary.HardwareRental)
	require.Equal(t, 0.0, summary.TotalMRC)
	require.Equal(t, summary.HardwareRental, summary.TotalExVat)
	require.Equal(t, summary.TotalExVat*1.15, summary.TotalIncVat)
}

func TestComputeRecurringCosts(t *testing.T) {
	session := scenarioSession()
	session.UpsertItem(SectionConnectivity, Item{ID: "fibre", Name: "Fibre 100", Cost: 899, Quantity: 1})
	session.UpsertItem(SectionLicensing, Item{ID: "pbx", Name: "Cloud PBX", Cost: 120, Quantity: 5})

	summary := Compute(session, scenarioScales(), DefaultFactors())

	require.Equal(t, 899.0, summary.ConnectivityCost)
	require.Equal(t, 600.0, summary.LicensingCost)
	// Hardware rental is deliberately excluded from the recurring subtotal.
	require.Equal(t, 1499.0, summary.TotalMRC)
	require.Equal(t, summary.HardwareRental+1499.0, summary.TotalExVat)
}

func TestComputeIsIdempotent(t *testing.T) {
	session := scenarioSession()
	scales := scenarioScales()
	factors := DefaultFactors()

	first := Compute(session, scales, factors)
	second := Compute(session, scales, factors)
	require.Equal(t, first, second)
}

func TestComputeDoesNotMutateInputs(t *testing.T) {
	session := scenarioSession()
	before := session.Section(SectionHardware).Items[0]
	_ = Compute(session, scenarioScales(), DefaultFactors())
	require.Equal(t, before, session.Section(SectionHardware).Items[0])
}

func TestComputeMonotonicInQuantity(t *testing.T) {
	session := scenarioSession()
	scales := scenarioScales()
	factors := DefaultFactors()
	base := Compute(session, scales, factors)

	session.Section(SectionHardware).Items[0].Quantity = 6
	bumped := Compute(session, scales, factors)

	require.GreaterOrEqual(t, bumped.HardwareTotal, base.HardwareTotal)
	require.GreaterOrEqual(t, bumped.HardwareInstallTotal, base.HardwareInstallTotal)
	require.GreaterOrEqual(t, bumped.FinanceAmount, base.FinanceAmount)
	require.GreaterOrEqual(t, bumped.TotalExVat, base.TotalExVat)
	require.GreaterOrEqual(t, bumped.TotalIncVat, base.TotalIncVat)
}

func TestComputeOnlyExtensionsCount(t *testing.T) {
	session := NewSession()
	session.UpsertItem(SectionHardware, Item{ID: "switchboard", Name: "Switchboard", Cost: 8000, Quantity: 1, Locked: true})
	session.UpsertItem(SectionHardware, Item{ID: "handset", Name: "Handset", Cost: 1000, Quantity: 3, IsExtension: true})

	summary := Compute(session, DefaultScales(), DefaultFactors())
	require.Equal(t, 3, summary.ExtensionCount)
	require.Equal(t, 11000.0, summary.HardwareTotal)
}

func TestComputeWithEmptyTables(t *testing.T) {
	// Uninitialised tables must still yield a full summary via the factor
	// fallback and zero-valued scales.
	summary := Compute(scenarioSession(), Scales{}, nil)
	require.Equal(t, DefaultFactor, summary.FactorUsed)
	require.Equal(t, summary.TotalExVat*1.15, summary.TotalIncVat)
}

func TestUpsertItem(t *testing.T) {
	session := NewSession()
	require.True(t, session.UpsertItem(SectionHardware, Item{ID: "a", Cost: 10, Quantity: 1}))
	require.True(t, session.UpsertItem(SectionHardware, Item{ID: "a", Cost: 10, Quantity: 4}))
	require.Len(t, session.Section(SectionHardware).Items, 1)
	require.Equal(t, 4, session.Section(SectionHardware).Items[0].Quantity)
	require.False(t, session.UpsertItem("unknown", Item{ID: "b"}))
}
