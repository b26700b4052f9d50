package game

import (
	"math"

	"sabacc-game/internal/sabacc"
)

// RankKey orders finished hands. Keys compare lexicographically ascending;
// the smaller key wins. An incomplete hand carries +Inf as its first element
// so it always ranks last.
type RankKey []float64

// Compare returns -1, 0 or 1 ordering k against o.
func (k RankKey) Compare(o RankKey) int {
	for i := 0; i < len(k) && i < len(o); i++ {
		switch {
		case k[i] < o[i]:
			return -1
		case k[i] > o[i]:
			return 1
		}
	}
	switch {
	case len(k) < len(o):
		return -1
	case len(k) > len(o):
		return 1
	}
	return 0
}

func (k RankKey) Less(o RankKey) bool {
	return k.Compare(o) < 0
}

func (k RankKey) Equal(o RankKey) bool {
	return k.Compare(o) == 0
}

// Evaluation is the outcome of ranking a single frozen hand.
type Evaluation struct {
	Key      RankKey
	Category string
	// Total is nil when the hand still contains unresolved wildcards.
	Total *int
}

func incompleteEvaluation() Evaluation {
	return Evaluation{Key: RankKey{math.Inf(1)}, Category: "Incomplete Hand"}
}

func intPtr(v int) *int {
	return &v
}

// evaluateKessel ranks a fixed-slot two-card hand against the zero target.
// All wildcard values must already be resolved.
func evaluateKessel(p *Player) Evaluation {
	positive, okP := p.Hand.Slot(sabacc.SlotPositive)
	negative, okN := p.Hand.Slot(sabacc.SlotNegative)
	if !okP || !okN {
		return incompleteEvaluation()
	}
	pv, okP := p.CardValue(sabacc.SlotPositive, positive)
	nv, okN := p.CardValue(sabacc.SlotNegative, negative)
	if !okP || !okN {
		return incompleteEvaluation()
	}

	total := pv + nv
	absP, absN := abs(pv), abs(nv)
	low, high := minInt(absP, absN), maxInt(absP, absN)

	switch {
	case positive.Kind == sabacc.Sylop && negative.Kind == sabacc.Sylop:
		return Evaluation{Key: RankKey{1}, Category: "Pure Sabacc", Total: intPtr(total)}
	case total == 0 && low == 1 && high == 1:
		return Evaluation{Key: RankKey{2, 1}, Category: "Prime Sabacc", Total: intPtr(total)}
	case total == 0 && low == 6 && high == 6:
		return Evaluation{Key: RankKey{3, 6}, Category: "Cheap Sabacc", Total: intPtr(total)}
	case total == 0:
		return Evaluation{Key: RankKey{4, float64(low)}, Category: "Standard Sabacc", Total: intPtr(total)}
	}

	// Nonzero totals: closest to zero wins, positive beats negative at equal
	// distance, then the higher raw slot value breaks remaining ties.
	positiveFlag := 1.0
	if total > 0 {
		positiveFlag = 0
	}
	key := RankKey{10, float64(abs(total)), positiveFlag, -float64(maxInt(pv, nv))}
	return Evaluation{Key: key, Category: "Nulrhek", Total: intPtr(total)}
}

// evaluateCorellian ranks an open zero-target hand. Sylops count as zeros.
// The ladder runs from the most exclusive named hand down to generic
// zero-sum and off-target hands.
func evaluateCorellian(cards []sabacc.Card) Evaluation {
	values := make([]int, len(cards))
	total := 0
	zeros := 0
	for i, c := range cards {
		v := c.Value
		if c.Kind == sabacc.Sylop {
			v = 0
		}
		values[i] = v
		total += v
		if v == 0 {
			zeros++
		}
	}

	absCounts := make(map[int]int)
	for _, v := range values {
		absCounts[abs(v)]++
	}
	var pairs, trips, quads []int
	for v, n := range absCounts {
		if n >= 2 {
			pairs = append(pairs, v)
		}
		if n >= 3 {
			trips = append(trips, v)
		}
		if n >= 4 {
			quads = append(quads, v)
		}
	}

	var positives []int
	for _, v := range values {
		if v > 0 {
			positives = append(positives, v)
		}
	}

	minNonzeroAbs := func() float64 {
		best := math.Inf(1)
		for _, v := range values {
			if v != 0 && float64(abs(v)) < best {
				best = float64(abs(v))
			}
		}
		return best
	}
	minAbs := func() float64 {
		best := math.Inf(1)
		for _, v := range values {
			if float64(abs(v)) < best {
				best = float64(abs(v))
			}
		}
		return best
	}
	sumPositives := 0
	for _, v := range positives {
		sumPositives += v
	}
	maxPositive := math.Inf(-1)
	for _, v := range positives {
		if float64(v) > maxPositive {
			maxPositive = float64(v)
		}
	}

	if total != 0 {
		positiveFlag := 1.0
		if total > 0 {
			positiveFlag = 0
		}
		key := RankKey{13, float64(abs(total)), positiveFlag, -float64(len(cards)), -float64(sumPositives), -maxPositive}
		return Evaluation{Key: key, Category: "Nulrhek", Total: intPtr(total)}
	}

	hasPair := len(pairs) > 0
	hasNonzeroPair := false
	for _, v := range pairs {
		if v != 0 {
			hasNonzeroPair = true
		}
	}
	lowestPair := lowestOf(pairs)
	lowestTrip := lowestOf(trips)
	lowestQuad := lowestOf(quads)

	switch {
	case zeros == 2 && len(cards) == 2:
		return Evaluation{Key: RankKey{1}, Category: "Pure Sabacc", Total: intPtr(total)}
	case zeros >= 2:
		return Evaluation{Key: RankKey{2}, Category: "Sarlacc Sabacc", Total: intPtr(total)}
	case isFullSabacc(values):
		return Evaluation{Key: RankKey{3}, Category: "Full Sabacc", Total: intPtr(total)}
	case zeros == 1 && len(quads) > 0:
		return Evaluation{Key: RankKey{4, orElse(lowestQuad, minNonzeroAbs())}, Category: "Fleet", Total: intPtr(total)}
	case zeros == 1 && len(pairs) >= 2:
		return Evaluation{Key: RankKey{5, orElse(lowestPair, minNonzeroAbs())}, Category: "Twin Sun", Total: intPtr(total)}
	case zeros == 1 && len(cards) == 3 && hasNonzeroPair:
		return Evaluation{Key: RankKey{6, orElse(lowestPair, minNonzeroAbs())}, Category: "Yee-Ha", Total: intPtr(total)}
	case zeros == 1 && hasNonzeroPair:
		return Evaluation{Key: RankKey{7, orElse(lowestPair, minNonzeroAbs())}, Category: "Kessel Run", Total: intPtr(total)}
	case len(quads) > 0:
		return Evaluation{Key: RankKey{8, orElse(lowestQuad, minAbs())}, Category: "Squadron", Total: intPtr(total)}
	case len(trips) > 0:
		return Evaluation{Key: RankKey{9, orElse(lowestTrip, minAbs())}, Category: "Bantha's Wild", Total: intPtr(total)}
	case len(pairs) >= 2:
		return Evaluation{Key: RankKey{10, orElse(lowestPair, minAbs())}, Category: "Rule of Two", Total: intPtr(total)}
	case hasPair:
		return Evaluation{Key: RankKey{11, orElse(lowestPair, minAbs())}, Category: "Sabacc Pair", Total: intPtr(total)}
	default:
		key := RankKey{12, minAbs(), -float64(len(cards)), -float64(sumPositives), -maxPositive}
		return Evaluation{Key: key, Category: "Sabacc", Total: intPtr(total)}
	}
}

// isFullSabacc detects the exact five-card set {+10, +10, 0, -10, -10}.
func isFullSabacc(values []int) bool {
	if len(values) != 5 {
		return false
	}
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	return counts[10] == 2 && counts[-10] == 2 && counts[0] == 1
}

// evaluateCoruscant ranks a suited hand against the rolled target number and
// suit. A two-Sylop hand outranks everything; otherwise closest to the
// target wins, then most suit matches (wild suits match any), then highest
// total, then highest single positive card.
func evaluateCoruscant(cards []sabacc.Card, targetNumber int, targetSuit sabacc.Suit) Evaluation {
	total := 0
	suitMatches := 0
	maxPositive := 0
	allSylops := len(cards) > 0
	for _, c := range cards {
		v := c.Value
		if c.Kind == sabacc.Sylop {
			v = 0
		} else {
			allSylops = false
		}
		total += v
		if c.Suit == targetSuit || c.Suit == sabacc.SuitWild {
			suitMatches++
		}
		if v > maxPositive {
			maxPositive = v
		}
	}

	if len(cards) == 2 && allSylops {
		return Evaluation{Key: RankKey{1}, Category: "Pure Sabacc", Total: intPtr(0)}
	}

	distance := abs(total - targetNumber)
	key := RankKey{2, float64(distance), -float64(suitMatches), -float64(total), -float64(maxPositive)}
	return Evaluation{Key: key, Category: "Shift", Total: intPtr(total)}
}

// Traditional target: totals of exactly +23 or -23 are a natural win.
const traditionalTarget = 23

// evaluateTraditional ranks an open hand against the ±23 target.
func evaluateTraditional(cards []sabacc.Card) Evaluation {
	total := 0
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Value
		total += c.Value
	}

	if len(cards) == 3 && isIdiotsArray(values) {
		return Evaluation{Key: RankKey{1}, Category: "Idiot's Array", Total: intPtr(total)}
	}
	if total == traditionalTarget || total == -traditionalTarget {
		return Evaluation{Key: RankKey{2}, Category: "Sabacc", Total: intPtr(total)}
	}
	if len(cards) == 2 && values[0] == -2 && values[1] == -2 {
		return Evaluation{Key: RankKey{3}, Category: "Fairy Empress", Total: intPtr(total)}
	}

	distance := minInt(abs(traditionalTarget-total), abs(-traditionalTarget-total))
	positiveFlag := 1.0
	if total > 0 {
		positiveFlag = 0
	}
	maxAbs := 0
	for _, v := range values {
		if abs(v) > maxAbs {
			maxAbs = abs(v)
		}
	}
	key := RankKey{4, float64(distance), positiveFlag, -float64(len(cards)), -float64(abs(total)), -float64(maxAbs)}
	return Evaluation{Key: key, Category: "Nulrhek", Total: intPtr(total)}
}

// isIdiotsArray detects the exact set {0, 2, 3}: the Idiot plus a 2 and a 3.
func isIdiotsArray(values []int) bool {
	seen := make(map[int]bool)
	for _, v := range values {
		seen[v] = true
	}
	return len(seen) == 3 && seen[0] && seen[2] && seen[3]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// lowestOf returns the smallest value, or NaN when the slice is empty.
func lowestOf(vs []int) float64 {
	if len(vs) == 0 {
		return math.NaN()
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if v < best {
			best = v
		}
	}
	return float64(best)
}

// orElse substitutes fallback when primary is NaN.
func orElse(primary, fallback float64) float64 {
	if math.IsNaN(primary) {
		return fallback
	}
	return primary
}
