package scoring

import "testing"

func TestAdvice(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{100, AdviceExcellent},
		{81, AdviceExcellent},
		{80, AdvicePossible},
		{61, AdvicePossible},
		{60, AdviceModerate},
		{41, AdviceModerate},
		{40, AdviceNotRecommended},
		{0, AdviceNotRecommended},
	}

	for _, tt := range tests {
		if got := Advice(tt.total); got != tt.want {
			t.Errorf("Advice(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestAdvice_Labels(t *testing.T) {
	if Advice(81) != "excellent" {
		t.Errorf("Advice(81) = %q", Advice(81))
	}
	if Advice(40) != "not recommended" {
		t.Errorf("Advice(40) = %q", Advice(40))
	}
}

func TestAdviceMessage(t *testing.T) {
	for _, total := range []int{100, 70, 50, 10} {
		if AdviceMessage(total) == "" {
			t.Errorf("AdviceMessage(%d) is empty", total)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		total int
		want  Tier
	}{
		{100, TierGreen},
		{75, TierGreen},
		{74, TierOrange},
		{50, TierOrange},
		{49, TierRed},
		{15, TierRed},
	}

	for _, tt := range tests {
		if got := TierFor(tt.total); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.total, got, tt.want)
		}
	}
}
