package compliance

// TradeThreshold is one trade-agreement tier relevant to Canadian
// public sector procurement.
type TradeThreshold struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

var tradeThresholds = []TradeThreshold{
	{Name: "BPS Threshold", Value: 121200, Description: "Broader Public Sector competitive threshold"},
	{Name: "CFTA Threshold", Value: 430000, Description: "Canadian Free Trade Agreement threshold"},
	{Name: "CETA Threshold", Value: 8800000, Description: "Canada-EU Trade Agreement threshold"},
}

// ApplicableThresholds lists the trade-agreement tiers a contract
// value reaches.
func ApplicableThresholds(value float64) []TradeThreshold {
	var applicable []TradeThreshold
	for _, t := range tradeThresholds {
		if value >= t.Value {
			applicable = append(applicable, t)
		}
	}
	return applicable
}

// MinimumPostingDays returns the posting period the reached tier
// requires, or 0 when no tier applies.
func MinimumPostingDays(value float64) int {
	switch {
	case value >= 8800000:
		return 35 // CETA
	case value >= 430000:
		return 30 // CFTA
	case value >= 121200:
		return 30 // BPS
	default:
		return 0
	}
}
