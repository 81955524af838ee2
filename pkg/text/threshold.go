package text

// Threshold maps a measured value (signal quality, battery charge) onto
// attributes, so widgets can color a reading by how alarming it is.
// Values below Critical pick CriticalAttr, values below Low pick LowAttr,
// everything else picks NormalAttr.
type Threshold struct {
	Critical float64
	Low      float64

	CriticalAttr Attributes
	LowAttr      Attributes
	NormalAttr   Attributes
}

// DefaultThreshold colors critical readings red and low readings yellow,
// with cutoffs suited to percentage scales.
func DefaultThreshold(normal Attributes) Threshold {
	return Threshold{
		Critical:     20,
		Low:          40,
		CriticalAttr: normal.WithForeground("1"),
		LowAttr:      normal.WithForeground("3"),
		NormalAttr:   normal,
	}
}

// Pick returns the attributes for v.
func (t Threshold) Pick(v float64) Attributes {
	switch {
	case v < t.Critical:
		return t.CriticalAttr
	case v < t.Low:
		return t.LowAttr
	default:
		return t.NormalAttr
	}
}
