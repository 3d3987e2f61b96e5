package pricing

// ResolveTier returns the tier whose quantity band contains qty, or nil when
// no band matches. Tiers are scanned highest MinQty first so that, should
// overlapping bands ever reach this point, the most specific bulk tier wins.
func ResolveTier(tiers []Tier, qty int) *Tier {
	var selected *Tier
	for i := range tiers {
		tier := tiers[i]
		if !tier.Contains(qty) {
			continue
		}
		if selected == nil || tier.MinQty > selected.MinQty {
			copy := tier
			selected = &copy
		}
	}
	return selected
}
