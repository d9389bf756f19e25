/*
Package feature defines the numeric features rows are described with
and the cutoff criteria trees test them against.
*/
package feature

import (
	"fmt"
	"math"
)

/*
Feature represents a property that can be observed on a sample and that
takes an ordered numeric value.
*/
type Feature struct {
	name string
}

/*
Sample is an interface for something that can be tested against a
Criterion.

Its ValueFor method returns the value of the sample corresponding to
the feature passed as parameter or an error if the sample does not
define one.
*/
type Sample interface {
	ValueFor(*Feature) (float64, error)
}

/*
New takes a name string and returns a feature with the given name.
*/
func New(name string) *Feature {
	return &Feature{name}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value is an integer or a float64 other than NaN it returns true
and nil, otherwise it returns false and an error describing the reason.
*/
func (f *Feature) Valid(value interface{}) (bool, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return false, fmt.Errorf("feature %s expects a number, got NaN", f.Name())
		}
		return true, nil
	case float32, int, int32, int64:
		return true, nil
	}
	return false, fmt.Errorf("feature %s expects a numeric value, got %T value", f.Name(), value)
}

func (f *Feature) String() string {
	return f.name
}

/*
Find takes a slice of features and a name and returns the feature in the
slice with that name or nil if there is none.
*/
func Find(features []*Feature, name string) *Feature {
	for _, f := range features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}
