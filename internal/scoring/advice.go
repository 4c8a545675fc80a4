package scoring

// Advice labels, from best to worst.
const (
	AdviceExcellent      = "excellent"
	AdvicePossible       = "travel possible, minor factors"
	AdviceModerate       = "moderate, plan wisely"
	AdviceNotRecommended = "not recommended"
)

// Advice maps a total score to a recommendation. Boundaries fall to the lower tier.
func Advice(total int) string {
	switch {
	case total > 80:
		return AdviceExcellent
	case total > 60:
		return AdvicePossible
	case total > 40:
		return AdviceModerate
	default:
		return AdviceNotRecommended
	}
}

var adviceMessages = map[string]string{
	AdviceExcellent:      "🌿 Excellent time to visit! Conditions are ideal.",
	AdvicePossible:       "🌤 Travel possible but consider minor factors.",
	AdviceModerate:       "⚠ Moderate conditions. Plan wisely.",
	AdviceNotRecommended: "🚫 Not recommended currently.",
}

// AdviceMessage is the full sentence shown to the user for a total score.
func AdviceMessage(total int) string {
	return adviceMessages[Advice(total)]
}

// Tier is the marker color class for a total score.
type Tier int

const (
	TierRed Tier = iota
	TierOrange
	TierGreen
)

// TierFor classifies a score for the map marker: >=75 green, >=50 orange, otherwise red.
func TierFor(total int) Tier {
	switch {
	case total >= 75:
		return TierGreen
	case total >= 50:
		return TierOrange
	default:
		return TierRed
	}
}

func (t Tier) String() string {
	switch t {
	case TierGreen:
		return "green"
	case TierOrange:
		return "orange"
	default:
		return "red"
	}
}
