package layout

// Split is a resizable division of a vertical row budget between a main area
// and a secondary panel below it. It tracks the secondary panel's share and
// keeps it within bounds.
type Split struct {
	Percentage float64 // 0-100, share for the secondary panel
	MinPercent float64
	MaxPercent float64
}

// NewSplit creates a Split giving the secondary panel the given share.
func NewSplit(percentage float64) *Split {
	s := &Split{
		Percentage: percentage,
		MinPercent: 10,
		MaxPercent: 90,
	}
	s.clamp()
	return s
}

// Apply divides total rows between the two areas. Both areas get at least
// one row whenever total allows it.
func (s *Split) Apply(total int) (main, secondary int) {
	if total <= 0 {
		return 0, 0
	}
	secondary = int(float64(total) * s.Percentage / 100)
	if secondary < 1 {
		secondary = 1
	}
	if secondary >= total {
		secondary = total - 1
	}
	return total - secondary, secondary
}

// Expand grows the secondary panel by delta percent.
func (s *Split) Expand(delta float64) {
	s.Percentage += delta
	s.clamp()
}

// Shrink shrinks the secondary panel by delta percent.
func (s *Split) Shrink(delta float64) {
	s.Percentage -= delta
	s.clamp()
}

func (s *Split) clamp() {
	if s.Percentage < s.MinPercent {
		s.Percentage = s.MinPercent
	}
	if s.Percentage > s.MaxPercent {
		s.Percentage = s.MaxPercent
	}
}
