/*
Package split scores binary split candidates and measures how many
training removals it takes for a chosen split to lose its place to a
competitor.
*/
package split

import (
	"fmt"

	"github.com/pbanos/hedgecut/feature"
)

/*
Sample is a labeled feature.Sample: something that can be routed through
a criterion and whose binary label (0 or 1) is known.
*/
type Sample interface {
	feature.Sample
	Label() int
}

/*
Statistics holds the label counts on both sides of a candidate split.
Counts are signed so that a decrement leaving them negative can be
detected instead of wrapping around.
*/
type Statistics struct {
	Criterion     feature.Criterion
	NumPlusLeft   int
	NumMinusLeft  int
	NumPlusRight  int
	NumMinusRight int
}

/*
NewStatistics takes a criterion and a slice of samples and returns the
statistics of splitting the samples with the criterion or an error if
a sample lacks a value for the criterion feature.
*/
func NewStatistics(c feature.Criterion, samples []Sample) (Statistics, error) {
	s := Statistics{Criterion: c}
	for _, sample := range samples {
		left, err := c.SatisfiedBy(sample)
		if err != nil {
			return s, fmt.Errorf("computing statistics for %v: %v", c, err)
		}
		s.Add(left, sample.Label(), 1)
	}
	return s, nil
}

/*
Add takes the branch a sample goes to, its label and a delta and adds
the delta to the matching count.
*/
func (s *Statistics) Add(left bool, label int, delta int) {
	switch {
	case left && label == 1:
		s.NumPlusLeft += delta
	case left:
		s.NumMinusLeft += delta
	case label == 1:
		s.NumPlusRight += delta
	default:
		s.NumMinusRight += delta
	}
}

/*
Remove takes a sample and decrements the count it was accounted in
according to the statistics criterion. It returns an error if the sample
has no value for the criterion feature.
*/
func (s *Statistics) Remove(sample Sample) error {
	left, err := s.Criterion.SatisfiedBy(sample)
	if err != nil {
		return err
	}
	s.Add(left, sample.Label(), -1)
	return nil
}

// Valid reports whether all four counts are non-negative.
func (s Statistics) Valid() bool {
	return s.NumPlusLeft >= 0 && s.NumMinusLeft >= 0 && s.NumPlusRight >= 0 && s.NumMinusRight >= 0
}

// Left returns the number of samples sent to the left branch.
func (s Statistics) Left() int {
	return s.NumPlusLeft + s.NumMinusLeft
}

// Right returns the number of samples sent to the right branch.
func (s Statistics) Right() int {
	return s.NumPlusRight + s.NumMinusRight
}

// Total returns the number of samples accounted by the statistics.
func (s Statistics) Total() int {
	return s.Left() + s.Right()
}

/*
Degenerate reports whether the statistics send every sample to the same
branch.
*/
func (s Statistics) Degenerate() bool {
	return s.Left() == 0 || s.Right() == 0
}

func (s Statistics) String() string {
	return fmt.Sprintf("{%v +L:%d -L:%d +R:%d -R:%d}", s.Criterion, s.NumPlusLeft, s.NumMinusLeft, s.NumPlusRight, s.NumMinusRight)
}
