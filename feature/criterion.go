package feature

import (
	"fmt"
)

/*
Criterion represents a binary test on a feature: samples whose value for
the feature is below the cutoff satisfy it and go to the left branch of
a split, the rest go to the right branch.

Criterion is a comparable value so it can be copied freely and used as a
map key.
*/
type Criterion struct {
	Feature *Feature
	Cutoff  float64
}

/*
NewCriterion takes a feature and a cutoff value and returns a Criterion
testing whether values of the feature are below the cutoff.
*/
func NewCriterion(f *Feature, cutoff float64) Criterion {
	return Criterion{f, cutoff}
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean
indicating if the sample's value for the criterion feature is strictly
below the cutoff. An error is returned if the sample does not define a
value for the feature.
*/
func (c Criterion) SatisfiedBy(s Sample) (bool, error) {
	v, err := s.ValueFor(c.Feature)
	if err != nil {
		return false, err
	}
	return c.Left(v), nil
}

/*
Left takes a value for the criterion feature and returns whether it is
routed to the left branch.
*/
func (c Criterion) Left(v float64) bool {
	return v < c.Cutoff
}

func (c Criterion) String() string {
	if c.Feature == nil {
		return fmt.Sprintf("? < %g", c.Cutoff)
	}
	return fmt.Sprintf("%s < %g", c.Feature.Name(), c.Cutoff)
}
