/*
Package dataset holds the in-memory training data trees are grown on:
labeled rows together with the features they are described with.
*/
package dataset

import (
	"fmt"
	"sort"

	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/split"
	"gonum.org/v1/gonum/stat"
)

// Error represents an error related with datasets
type Error string

/*
ErrEmptyDataset is the error returned when an operation requires at
least one sample and the dataset has none.
*/
const ErrEmptyDataset = Error("empty dataset")

// ErrInvalidLabel is the error returned for labels other than 0 and 1.
const ErrInvalidLabel = Error("label must be 0 or 1")

func (e Error) Error() string {
	return string(e)
}

/*
Dataset is an ordered, read-only collection of labeled samples that
define a value for each of the dataset features.
*/
type Dataset struct {
	samples     []split.Sample
	features    []*feature.Feature
	numPositive int
}

/*
New takes a slice of labeled samples and a slice of features and returns
a Dataset with them or an error if a sample has no value for one of the
features or a label other than 0 or 1.
*/
func New(samples []split.Sample, features []*feature.Feature) (*Dataset, error) {
	for i, s := range samples {
		for _, f := range features {
			if _, err := s.ValueFor(f); err != nil {
				return nil, fmt.Errorf("sample %d: %v", i, err)
			}
		}
		if l := s.Label(); l != 0 && l != 1 {
			return nil, fmt.Errorf("sample %d: %v: %d", i, ErrInvalidLabel, l)
		}
	}
	return newDataset(samples, features), nil
}

/*
FromRows takes a slice of rows and a slice of features and works like
New.
*/
func FromRows(rows []*Row, features []*feature.Feature) (*Dataset, error) {
	samples := make([]split.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, r)
	}
	return New(samples, features)
}

func newDataset(samples []split.Sample, features []*feature.Feature) *Dataset {
	d := &Dataset{samples: samples, features: features}
	for _, s := range samples {
		if s.Label() == 1 {
			d.numPositive++
		}
	}
	return d
}

// Samples returns the samples in the dataset in order.
func (d *Dataset) Samples() []split.Sample {
	return d.samples
}

// Features returns the features samples in the dataset are described with.
func (d *Dataset) Features() []*feature.Feature {
	return d.features
}

// Count returns the number of samples in the dataset.
func (d *Dataset) Count() int {
	return len(d.samples)
}

// LabelCounts returns the number of positive and negative samples.
func (d *Dataset) LabelCounts() (int, int) {
	return d.numPositive, len(d.samples) - d.numPositive
}

/*
LabelConstant reports whether all samples in the dataset share the same
label. An empty dataset has a constant label.
*/
func (d *Dataset) LabelConstant() bool {
	return d.numPositive == 0 || d.numPositive == len(d.samples)
}

/*
Constant takes a feature and reports whether all samples in the dataset
have the same value for it.
*/
func (d *Dataset) Constant(f *feature.Feature) (bool, error) {
	var first float64
	for i, s := range d.samples {
		v, err := s.ValueFor(f)
		if err != nil {
			return false, err
		}
		if i == 0 {
			first = v
		} else if v != first {
			return false, nil
		}
	}
	return true, nil
}

/*
Values takes a feature and returns the values of the samples for it in
ascending order.
*/
func (d *Dataset) Values(f *feature.Feature) ([]float64, error) {
	values := make([]float64, 0, len(d.samples))
	for _, s := range d.samples {
		v, err := s.ValueFor(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	sort.Float64s(values)
	return values, nil
}

/*
Percentiles takes a feature and a slice of percentages in (0, 100] and
returns the empirical percentiles of the feature values in the dataset
for each of them, in the same order. It returns ErrEmptyDataset if the
dataset has no samples.
*/
func (d *Dataset) Percentiles(f *feature.Feature, percentages []float64) ([]float64, error) {
	if len(d.samples) == 0 {
		return nil, ErrEmptyDataset
	}
	values, err := d.Values(f)
	if err != nil {
		return nil, err
	}
	result := make([]float64, 0, len(percentages))
	for _, p := range percentages {
		if p <= 0 || p > 100 {
			return nil, fmt.Errorf("percentile %v out of range (0, 100]", p)
		}
		result = append(result, stat.Quantile(p/100.0, stat.Empirical, values, nil))
	}
	return result, nil
}

/*
Statistics takes a criterion and returns the split statistics of
partitioning the dataset with it.
*/
func (d *Dataset) Statistics(c feature.Criterion) (split.Statistics, error) {
	return split.NewStatistics(c, d.samples)
}

/*
Split takes a criterion and returns a dataset with the samples that
satisfy it and another with the rest, both preserving sample order.
*/
func (d *Dataset) Split(c feature.Criterion) (*Dataset, *Dataset, error) {
	var left, right []split.Sample
	for _, s := range d.samples {
		ok, err := c.SatisfiedBy(s)
		if err != nil {
			return nil, nil, fmt.Errorf("splitting dataset with %v: %v", c, err)
		}
		if ok {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return newDataset(left, d.features), newDataset(right, d.features), nil
}

/*
Without takes a sample and returns a dataset with every sample in d but
the first occurrence of the given one, compared by identity.
*/
func (d *Dataset) Without(sample split.Sample) *Dataset {
	samples := make([]split.Sample, 0, len(d.samples))
	removed := false
	for _, s := range d.samples {
		if !removed && s == sample {
			removed = true
			continue
		}
		samples = append(samples, s)
	}
	return newDataset(samples, d.features)
}
