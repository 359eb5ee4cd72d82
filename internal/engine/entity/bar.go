package entity

// Bar is a {max, current, rate} resource meter: health, mana, action time,
// experience.
type Bar struct {
	Max     float64 `yaml:"max"`
	Current float64 `yaml:"current"`
	Rate    float64 `yaml:"rate"`
}

// NewBar returns a full bar.
func NewBar(max, rate float64) Bar {
	return Bar{Max: max, Current: max, Rate: rate}
}

// Fill advances the bar by Rate*dt and clamps it into [0, Max].
func (b *Bar) Fill(dt float64) {
	b.Current += b.Rate * dt
	b.Clamp()
}

// Add adds v and clamps.
func (b *Bar) Add(v float64) {
	b.Current += v
	b.Clamp()
}

// Clamp restricts Current into [0, Max].
func (b *Bar) Clamp() {
	if b.Current < 0 {
		b.Current = 0
	}
	if b.Current > b.Max {
		b.Current = b.Max
	}
}

// Refill sets Current to Max.
func (b *Bar) Refill() {
	b.Current = b.Max
}

// Full reports whether the bar has reached Max.
func (b Bar) Full() bool {
	return b.Max > 0 && b.Current >= b.Max
}

// Empty reports whether nothing is left.
func (b Bar) Empty() bool {
	return b.Current <= 0
}

// Ratio is Current/Max in [0, 1]; a zero-max bar reports 0.
func (b Bar) Ratio() float64 {
	if b.Max <= 0 {
		return 0
	}
	r := b.Current / b.Max
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
