package attendance

// EffectiveTime applies the statutory unpaid-break deduction to a raw
// work duration. The schedule is a step function on total minutes:
//
//	< 4h30m          no deduction
//	4h30m - 6h       30 minutes
//	6h - 6h30m       no deduction
//	6h30m - 7h       30 minutes
//	>= 7h            60 minutes
//
// The 6h-6h30m band reinstates full credit before the next deduction
// tier starts at 6h30m. The result never goes below zero.
func EffectiveTime(d Duration) Duration {
	m := d.TotalMinutes()

	var deduction int
	switch {
	case m < 270:
		deduction = 0
	case m < 360:
		deduction = 30
	case m < 390:
		deduction = 0
	case m < 420:
		deduction = 30
	default:
		deduction = 60
	}

	if m-deduction < 0 {
		return 0
	}
	return Duration(m - deduction)
}
