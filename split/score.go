package split

import (
	"fmt"
	"math"
)

/*
Entropy takes the counts of two classes and returns the binary Shannon
entropy in bits of the distribution they describe. It returns 0 when
both counts are 0 and panics if any of them is negative.
*/
func Entropy(a, b int) float64 {
	if a < 0 || b < 0 {
		panic(fmt.Sprintf("entropy of negative counts %d, %d", a, b))
	}
	total := a + b
	if total == 0 {
		return 0.0
	}
	var result float64
	for _, c := range []int{a, b} {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

/*
Score takes split statistics and returns their symmetric uncertainty

  2 x (H_prior - H_posterior) / (H_prior + H_test)

where H_prior is the label entropy before splitting, H_posterior the
weighted label entropy of both branches and H_test the entropy of the
branch sizes. The result lies in [0, 1]. It is 0 when there are no
samples, when the denominator is 0 or when the statistics hold negative
counts.
*/
func Score(s Statistics) float64 {
	if !s.Valid() {
		return 0.0
	}
	n := s.Total()
	if n == 0 {
		return 0.0
	}
	numPlus := s.NumPlusLeft + s.NumPlusRight
	numMinus := s.NumMinusLeft + s.NumMinusRight
	left := s.Left()
	right := s.Right()

	prior := Entropy(numPlus, numMinus)
	test := Entropy(left, right)
	denominator := prior + test
	if denominator == 0 {
		return 0.0
	}
	nf := float64(n)
	posterior := float64(left)/nf*Entropy(s.NumPlusLeft, s.NumMinusLeft) +
		float64(right)/nf*Entropy(s.NumPlusRight, s.NumMinusRight)
	return 2.0 * (prior - posterior) / denominator
}

// ScoreDiff returns Score(a) - Score(b).
func ScoreDiff(a, b Statistics) float64 {
	return Score(a) - Score(b)
}
