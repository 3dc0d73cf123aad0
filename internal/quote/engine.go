package quote

// Section identifiers. Exactly three sections exist per deal session.
const (
	SectionHardware     = "hardware"
	SectionConnectivity = "connectivity"
	SectionLicensing    = "licensing"
)

// VATRate is the fixed domestic VAT rate applied to the monthly total.
const VATRate = 0.15

// Item is a priced, quantifiable line in one of the deal sections. Catalog
// items arrive with zero quantity; the quantity is owned by the session.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	Locked      bool    `json:"locked,omitempty"`
	IsExtension bool    `json:"isExtension,omitempty"`
}

// Section groups the items of one deal area.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// DealDetails carries the scalar parameters of one deal.
type DealDetails struct {
	CustomerName          string  `json:"customerName"`
	DistanceToInstall     float64 `json:"distanceToInstall"`
	Term                  int     `json:"term"`
	Escalation            int     `json:"escalation"`
	AdditionalGrossProfit float64 `json:"additionalGrossProfit"`
	Settlement            float64 `json:"settlement"`
}

// Session is the explicit state of one in-progress calculation: the three
// sections plus the deal parameters. Persisting it is the caller's concern;
// the calculator only ever reads it.
type Session struct {
	Sections    []Section   `json:"sections"`
	DealDetails DealDetails `json:"dealDetails"`
}

// NewSession returns a session with empty sections and default deal details.
func NewSession() Session {
	return Session{
		Sections: []Section{
			{ID: SectionHardware, Title: "Hardware"},
			{ID: SectionConnectivity, Title: "Connectivity"},
			{ID: SectionLicensing, Title: "Licensing"},
		},
		DealDetails: DealDetails{Term: 60},
	}
}

// Section returns the section with the given id, or nil.
func (s *Session) Section(id string) *Section {
	for i := range s.Sections {
		if s.Sections[i].ID == id {
			return &s.Sections[i]
		}
	}
	return nil
}

// UpsertItem updates an existing item in the named section or appends it
// when absent. Temporary items added mid-session flow through the same path
// as catalog items.
func (s *Session) UpsertItem(sectionID string, item Item) bool {
	section := s.Section(sectionID)
	if section == nil {
		return false
	}
	for i := range section.Items {
		if section.Items[i].ID == item.ID {
			section.Items[i] = item
			return true
		}
	}
	section.Items = append(section.Items, item)
	return true
}

// CostSummary is the full set of figures derived from a session. It is
// recomputed on demand and never mutated independently. FinanceAmount and
// TotalPayout are the same quantity emitted under both historical names.
type CostSummary struct {
	ExtensionCount       int     `json:"extensionCount"`
	HardwareTotal        float64 `json:"hardwareTotal"`
	HardwareInstallTotal float64 `json:"hardwareInstallTotal"`
	BaseGrossProfit      float64 `json:"baseGrossProfit"`
	AdditionalProfit     float64 `json:"additionalProfit"`
	TotalGrossProfit     float64 `json:"totalGrossProfit"`
	FinanceFee           float64 `json:"financeFee"`
	SettlementAmount     float64 `json:"settlementAmount"`
	FinanceAmount        float64 `json:"financeAmount"`
	TotalPayout          float64 `json:"totalPayout"`
	HardwareRental       float64 `json:"hardwareRental"`
	ConnectivityCost     float64 `json:"connectivityCost"`
	LicensingCost        float64 `json:"licensingCost"`
	TotalMRC             float64 `json:"totalMRC"`
	TotalExVat           float64 `json:"totalExVat"`
	TotalIncVat          float64 `json:"totalIncVat"`
	FactorUsed           float64 `json:"factorUsed"`
}

func sectionTotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Cost * float64(item.Quantity)
	}
	return total
}

func extensionCount(items []Item) int {
	var count int
	for _, item := range items {
		if item.IsExtension {
			count += item.Quantity
		}
	}
	return count
}

// Compute derives the cost summary from the session and the current pricing
// tables. It is pure: identical inputs yield identical output and none of
// the inputs are mutated. No rounding happens mid-chain; presentation
// rounding is the display layer's concern.
func Compute(session Session, scales Scales, factors FactorTable) CostSummary {
	var hardwareItems, connectivityItems, licensingItems []Item
	if section := session.Section(SectionHardware); section != nil {
		hardwareItems = section.Items
	}
	if section := session.Section(SectionConnectivity); section != nil {
		connectivityItems = section.Items
	}
	if section := session.Section(SectionLicensing); section != nil {
		licensingItems = section.Items
	}

	deal := session.DealDetails

	hardwareTotal := sectionTotal(hardwareItems)
	extensions := extensionCount(hardwareItems)

	installationScale := scales.InstallationFor(extensions)
	distanceCost := deal.DistanceToInstall * scales.AdditionalCosts.CostPerKilometer
	extensionCost := float64(extensions) * scales.AdditionalCosts.CostPerPoint
	hardwareInstallTotal := hardwareTotal + installationScale + distanceCost + extensionCost

	baseGrossProfit := scales.GrossProfitFor(extensions)
	totalGrossProfit := baseGrossProfit + deal.AdditionalGrossProfit

	baseFinanceAmount := hardwareInstallTotal + totalGrossProfit + deal.Settlement
	financeFee := scales.FinanceFeeFor(baseFinanceAmount)

	// The payout includes the fee; the factor is banded on the fee-inclusive
	// amount.
	financeAmount := baseFinanceAmount + financeFee
	totalPayout := financeAmount

	factorUsed := factors.FactorFor(deal.Term, deal.Escalation, financeAmount)
	hardwareRental := totalPayout * factorUsed

	connectivityCost := sectionTotal(connectivityItems)
	licensingCost := sectionTotal(licensingItems)

	// Hardware rental is tracked separately from the recurring subtotal.
	totalMRC := connectivityCost + licensingCost
	totalExVat := hardwareRental + connectivityCost + licensingCost
	totalIncVat := totalExVat * (1 + VATRate)

	return CostSummary{
		ExtensionCount:       extensions,
		HardwareTotal:        hardwareTotal,
		HardwareInstallTotal: hardwareInstallTotal,
		BaseGrossProfit:      baseGrossProfit,
		AdditionalProfit:     deal.AdditionalGrossProfit,
		TotalGrossProfit:     totalGrossProfit,
		FinanceFee:           financeFee,
		SettlementAmount:     deal.Settlement,
		FinanceAmount:        financeAmount,
		TotalPayout:          totalPayout,
		HardwareRental:       hardwareRental,
		ConnectivityCost:     connectivityCost,
		LicensingCost:        licensingCost,
		TotalMRC:             totalMRC,
		TotalExVat:           totalExVat,
		TotalIncVat:          totalIncVat,
		FactorUsed:           factorUsed,
	}
}
