package feature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSample map[string]float64

func (s mapSample) ValueFor(f *Feature) (float64, error) {
	v, ok := s[f.Name()]
	if !ok {
		return 0, fmt.Errorf("no value for %s", f.Name())
	}
	return v, nil
}

func TestCriterionSatisfiedBy(t *testing.T) {
	age := New("age")
	c := NewCriterion(age, 18)

	ok, err := c.SatisfiedBy(mapSample{"age": 17.5})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SatisfiedBy(mapSample{"age": 18})
	require.NoError(t, err)
	assert.False(t, ok, "values equal to the cutoff go right")

	_, err = c.SatisfiedBy(mapSample{"fare": 3})
	assert.Error(t, err)
}

func TestCriterionIsComparable(t *testing.T) {
	age := New("age")
	assert.Equal(t, NewCriterion(age, 3), NewCriterion(age, 3))
	assert.NotEqual(t, NewCriterion(age, 3), NewCriterion(New("age"), 3))
	assert.Equal(t, "age < 3", NewCriterion(age, 3).String())
}

func TestFeatureValid(t *testing.T) {
	f := New("fare")
	ok, err := f.Valid(3.5)
	assert.True(t, ok)
	assert.NoError(t, err)
	ok, err = f.Valid("cheap")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Equal(t, f, Find([]*Feature{New("age"), f}, "fare"))
	assert.Nil(t, Find([]*Feature{f}, "age"))
}
