package layout

import "testing"

func TestNewSplit(t *testing.T) {
	s := NewSplit(30)

	if s.Percentage != 30 {
		t.Errorf("Percentage = %f, want 30", s.Percentage)
	}
	if s.MinPercent != 10 {
		t.Errorf("MinPercent = %f, want 10", s.MinPercent)
	}
	if s.MaxPercent != 90 {
		t.Errorf("MaxPercent = %f, want 90", s.MaxPercent)
	}
}

func TestNewSplit_Clamping(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		want       float64
	}{
		{"below_min", 5, 10},
		{"above_max", 99, 90},
		{"within_bounds", 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplit(tt.percentage)
			if s.Percentage != tt.want {
				t.Errorf("Percentage = %f, want %f", s.Percentage, tt.want)
			}
		})
	}
}

func TestSplit_Apply(t *testing.T) {
	s := NewSplit(30)

	main, secondary := s.Apply(100)

	if main != 70 {
		t.Errorf("main = %d, want 70", main)
	}
	if secondary != 30 {
		t.Errorf("secondary = %d, want 30", secondary)
	}
}

func TestSplit_Apply_SmallTotals(t *testing.T) {
	s := NewSplit(30)

	for total := 0; total <= 3; total++ {
		main, secondary := s.Apply(total)
		if main+secondary != total {
			t.Errorf("Apply(%d): main+secondary = %d, want %d", total, main+secondary, total)
		}
		if total >= 2 && (main < 1 || secondary < 1) {
			t.Errorf("Apply(%d): both areas should get a row, got main=%d secondary=%d", total, main, secondary)
		}
	}
}

func TestSplit_ExpandAndShrink(t *testing.T) {
	s := NewSplit(30)

	s.Expand(10)
	if s.Percentage != 40 {
		t.Errorf("Percentage after Expand = %f, want 40", s.Percentage)
	}

	s.Expand(100)
	if s.Percentage != 90 {
		t.Errorf("Percentage after overflow Expand = %f, want 90", s.Percentage)
	}

	s.Shrink(100)
	if s.Percentage != 10 {
		t.Errorf("Percentage after underflow Shrink = %f, want 10", s.Percentage)
	}
}
