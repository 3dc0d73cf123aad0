package quote

// DefaultScales returns the built-in pricing scales used until an admin has
// published a sheet. Callers receive a fresh copy each time.
func DefaultScales() Scales {
	return Scales{
		Installation: Scale{
			"0-4":   3500,
			"5-8":   3500,
			"9-16":  7000,
			"17-32": 10500,
			"33+":   15000,
		},
		FinanceFee: Scale{
			"0-20000":      1000,
			"20001-50000":  1000,
			"50001-100000": 2000,
			"100001+":      3000,
		},
		GrossProfit: Scale{
			"0-4":   15000,
			"5-8":   20000,
			"9-16":  25000,
			"17-32": 30000,
			"33+":   35000,
		},
		AdditionalCosts: AdditionalCosts{
			CostPerKilometer: 15,
			CostPerPoint:     250,
		},
	}
}

// DefaultFactors returns the built-in rental factor table used until an
// admin has published one.
func DefaultFactors() FactorTable {
	return FactorTable{
		"36_months": {
			"0%": {
				"0-20000":      0.03891,
				"20001-50000":  0.03761,
				"50001-100000": 0.03641,
				"100000+":      0.03561,
			},
			"10%": {
				"0-20000":      0.04012,
				"20001-50000":  0.03882,
				"50001-100000": 0.03762,
				"100000+":      0.03682,
			},
			"15%": {
				"0-20000":      0.04133,
				"20001-50000":  0.04003,
				"50001-100000": 0.03883,
				"100000+":      0.03803,
			},
		},
		"48_months": {
			"0%": {
				"0-20000":      0.03133,
				"20001-50000":  0.03003,
				"50001-100000": 0.02883,
				"100000+":      0.02803,
			},
			"10%": {
				"0-20000":      0.03254,
				"20001-50000":  0.03124,
				"50001-100000": 0.03004,
				"100000+":      0.02924,
			},
			"15%": {
				"0-20000":      0.03375,
				"20001-50000":  0.03245,
				"50001-100000": 0.03125,
				"100000+":      0.03045,
			},
		},
		"60_months": {
			"0%": {
				"0-20000":      0.02695,
				"20001-50000":  0.02565,
				"50001-100000": 0.02445,
				"100000+":      0.02365,
			},
			"10%": {
				"0-20000":      0.02816,
				"20001-50000":  0.02686,
				"50001-100000": 0.02566,
				"100000+":      0.02486,
			},
			"15%": {
				"0-20000":      0.02937,
				"20001-50000":  0.02807,
				"50001-100000": 0.02687,
				"100000+":      0.02607,
			},
		},
	}
}
