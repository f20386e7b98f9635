package domain

// Chain names one of the restaurant chains counted per state.
type Chain string

const (
	ChainMcDonalds Chain = "McDonalds"
	ChainStarbucks Chain = "Starbucks"
	ChainSubway    Chain = "Subway"
	ChainTacoBell  Chain = "Taco_Bell"
)

// Chains lists every chain in the order the reshape emits them.
var Chains = []Chain{ChainMcDonalds, ChainStarbucks, ChainSubway, ChainTacoBell}

// InputRecord is one state in wide format: one field per chain.
type InputRecord struct {
	Name              string
	ObesityPercentage float64

	McDonalds float64
	Starbucks float64
	Subway    float64
	TacoBell  float64
}

// Count returns the record's value for chain. ok is false for an unknown chain.
func (r InputRecord) Count(c Chain) (value float64, ok bool) {
	switch c {
	case ChainMcDonalds:
		return r.McDonalds, true
	case ChainStarbucks:
		return r.Starbucks, true
	case ChainSubway:
		return r.Subway, true
	case ChainTacoBell:
		return r.TacoBell, true
	default:
		return 0, false
	}
}

// OutputRecord is one (state, chain) pair in long format.
// Field order matches the emitted JSON key order.
type OutputRecord struct {
	Name              string  `json:"name"`
	ObesityPercentage float64 `json:"obesity_percentage"`
	Restaurant        Chain   `json:"restaurant"`
	Count             float64 `json:"count"`
}
