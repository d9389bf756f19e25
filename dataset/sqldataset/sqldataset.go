package sqldataset

import (
	"context"
	"fmt"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
)

/*
RawSample is a row as stored on the samples table: the values of its
defined features by column name and its label.
*/
type RawSample struct {
	Values map[string]float64
	Label  int
}

/*
Adapter is an interface providing the methods needed to store and load
rows on a database backend.
*/
type Adapter interface {
	// ColumnName takes a feature or label name and returns the
	// column name for it, or an error if it cannot be used as one.
	ColumnName(string) (string, error)
	// CreateSampleTable ensures the samples table exists with the
	// given feature and label columns.
	CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error
	// AddSamples inserts the given samples and returns the number
	// of samples inserted.
	AddSamples(ctx context.Context, samples []RawSample, featureColumns []string, labelColumn string) (int, error)
	// IterateOnSamples calls the lambda with each stored sample and
	// its index in insertion order until it returns false or an
	// error.
	IterateOnSamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, RawSample) (bool, error)) error
	// CountSamples returns the number of stored samples.
	CountSamples(context.Context) (int, error)
	// Close releases the database connection.
	Close() error
}

type columns struct {
	features map[string]string
	names    []string
	label    string
}

func columnsFor(a Adapter, features []*feature.Feature, label string) (*columns, error) {
	cs := &columns{features: make(map[string]string)}
	used := make(map[string]string)
	for _, f := range features {
		c, err := a.ColumnName(f.Name())
		if err != nil {
			return nil, err
		}
		if other, ok := used[c]; ok {
			return nil, fmt.Errorf("features %s and %s map to the same column %s", other, f.Name(), c)
		}
		used[c] = f.Name()
		cs.features[f.Name()] = c
		cs.names = append(cs.names, c)
	}
	c, err := a.ColumnName(label)
	if err != nil {
		return nil, err
	}
	if other, ok := used[c]; ok {
		return nil, fmt.Errorf("label %s and feature %s map to the same column %s", label, other, c)
	}
	cs.label = c
	return cs, nil
}

/*
Write takes a context, an adapter, a slice of rows, a slice of features
and the name of the label and stores the rows on the samples table,
creating it if it does not exist. Only the values for the given
features are stored. It returns the number of rows written and an error
if not all could be written.
*/
func Write(ctx context.Context, a Adapter, rows []*dataset.Row, features []*feature.Feature, label string) (int, error) {
	cs, err := columnsFor(a, features, label)
	if err != nil {
		return 0, err
	}
	err = a.CreateSampleTable(ctx, cs.names, cs.label)
	if err != nil {
		return 0, err
	}
	samples := make([]RawSample, 0, len(rows))
	for _, r := range rows {
		values := make(map[string]float64)
		for _, f := range features {
			v, err := r.ValueFor(f)
			if err != nil {
				continue
			}
			values[cs.features[f.Name()]] = v
		}
		samples = append(samples, RawSample{Values: values, Label: r.Label()})
	}
	n, err := a.AddSamples(ctx, samples, cs.names, cs.label)
	if err != nil {
		return n, fmt.Errorf("writing rows: %v", err)
	}
	return n, nil
}

/*
ReadByRow takes a context, an adapter, a slice of features, the name of
the label and a lambda function on an integer and a row that returns a
boolean value. It reads the rows on the samples table in insertion
order and calls the lambda with each until it returns false or an error.
An error is returned if the rows cannot be read or a stored label is
neither 0 nor 1.
*/
func ReadByRow(ctx context.Context, a Adapter, features []*feature.Feature, label string, lambda func(int, *dataset.Row) (bool, error)) error {
	cs, err := columnsFor(a, features, label)
	if err != nil {
		return err
	}
	return a.IterateOnSamples(ctx, cs.names, cs.label, func(i int, rs RawSample) (bool, error) {
		values := make(map[string]float64)
		for _, f := range features {
			if v, ok := rs.Values[cs.features[f.Name()]]; ok {
				values[f.Name()] = v
			}
		}
		r, err := dataset.NewRow(values, rs.Label)
		if err != nil {
			return false, fmt.Errorf("reading row %d: %v", i, err)
		}
		return lambda(i, r)
	})
}

/*
Read takes a context, an adapter, a slice of features and the name of
the label and returns all the rows on the samples table in insertion
order or an error.
*/
func Read(ctx context.Context, a Adapter, features []*feature.Feature, label string) ([]*dataset.Row, error) {
	var rows []*dataset.Row
	if n, err := a.CountSamples(ctx); err == nil {
		rows = make([]*dataset.Row, 0, n)
	}
	err := ReadByRow(ctx, a, features, label, func(_ int, r *dataset.Row) (bool, error) {
		rows = append(rows, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
