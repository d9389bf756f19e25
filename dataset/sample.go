package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/hedgecut/feature"
)

/*
Row is an immutable training or testing sample: a value for each
feature by name plus a binary label.
*/
type Row struct {
	values map[string]float64
	label  int
}

/*
NewRow takes a map of feature names to values and a label and returns a
Row with a copy of the values, or ErrInvalidLabel if the label is
neither 0 nor 1.
*/
func NewRow(values map[string]float64, label int) (*Row, error) {
	if label != 0 && label != 1 {
		return nil, fmt.Errorf("%v: %d", ErrInvalidLabel, label)
	}
	vs := make(map[string]float64, len(values))
	for k, v := range values {
		vs[k] = v
	}
	return &Row{vs, label}, nil
}

/*
ValueFor takes a feature and returns the value of the row for it or an
error if the row has no value for the feature.
*/
func (r *Row) ValueFor(f *feature.Feature) (float64, error) {
	v, ok := r.values[f.Name()]
	if !ok {
		return 0, fmt.Errorf("row has no value for feature %s", f.Name())
	}
	return v, nil
}

// Values returns a copy of the values of the row by feature name.
func (r *Row) Values() map[string]float64 {
	vs := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		vs[k] = v
	}
	return vs
}

// Label returns the label of the row, 0 or 1.
func (r *Row) Label() int {
	return r.label
}

func (r *Row) String() string {
	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s:%g", n, r.values[n]))
	}
	return fmt.Sprintf("{%s label:%d}", strings.Join(parts, " "), r.label)
}
