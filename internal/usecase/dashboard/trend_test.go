package dashboard

import "testing"

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		previous  float64
		wantValue float64
		wantType  TrendType
	}{
		{name: "growth", current: 150, previous: 100, wantValue: 50, wantType: TrendPositive},
		{name: "decline", current: 75, previous: 100, wantValue: -25, wantType: TrendNegative},
		{name: "flat", current: 100, previous: 100, wantValue: 0, wantType: TrendNeutral},
		{name: "from zero to something", current: 12, previous: 0, wantValue: 100, wantType: TrendPositive},
		{name: "zero both windows", current: 0, previous: 0, wantValue: 0, wantType: TrendNeutral},
		{name: "drop to zero", current: 0, previous: 40, wantValue: -100, wantType: TrendNegative},
		{name: "rounded to one decimal", current: 1, previous: 3, wantValue: -66.7, wantType: TrendNegative},
		{name: "tiny growth rounds away", current: 10000.1, previous: 10000, wantValue: 0, wantType: TrendNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTrend(tt.current, tt.previous)
			if got.Value != tt.wantValue {
				t.Errorf("computeTrend(%v, %v).Value = %v, want %v", tt.current, tt.previous, got.Value, tt.wantValue)
			}
			if got.Type != tt.wantType {
				t.Errorf("computeTrend(%v, %v).Type = %v, want %v", tt.current, tt.previous, got.Type, tt.wantType)
			}
		})
	}
}
