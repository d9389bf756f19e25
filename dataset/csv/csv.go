/*
Package csv reads and writes labeled rows as CSV content.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
)

// UndefinedValue is the CSV field content for a feature
// without a value on a row.
const UndefinedValue = "?"

/*
Writer is an interface for a destination to which rows
can be written.
*/
type Writer interface {
	// Write will attempt to write the given rows
	// and will return the actually written number
	// of rows and an error (if not all rows could
	// be written)
	Write([]*dataset.Row) (int, error)
	// Count returns the total number of rows written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []*feature.Feature
	w        *csv.Writer
}

// column describes how a CSV column is parsed: as
// the value of a feature or, when f is nil, as the
// label of the row.
type column struct {
	f *feature.Feature
}

/*
ReadRows takes an io.Reader for a CSV stream, a slice of features and the
name of the label column and returns the rows parsed from the reader or an
error.

The header or first row of the CSV content is expected to consist of the
names of the given features and the label, in any order. The rest of the
rows should consist of numeric values for the features, or the '?' string
to leave the feature undefined, and 0 or 1 for the label.
*/
func ReadRows(reader io.Reader, features []*feature.Feature, label string) ([]*dataset.Row, error) {
	rows := []*dataset.Row{}
	err := ReadRowsByRow(reader, features, label, func(_ int, r *dataset.Row) (bool, error) {
		rows = append(rows, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

/*
ReadRowsByRow takes an io.Reader for a CSV stream, a slice of features, the
name of the label column and a lambda function on an integer and a row
that returns a boolean value. It parses the rows from the reader and for
each it calls the lambda function with the row and its index as
parameters. If the lambda function returns true, it will continue
processing the next row, otherwise it will stop. An error is returned if
something goes wrong when reading the content or parsing a row.

The expected format is the one described for ReadRows.
*/
func ReadRowsByRow(reader io.Reader, features []*feature.Feature, label string, lambda func(int, *dataset.Row) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseHeader(header, features, label)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		row, err := parseRecord(record, columns)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadRowsFromFilePath takes a filepath string, a slice of features and the
name of the label column, opens the file to which the filepath points to
and uses ReadRows to return the rows in it or an error. If the filepath is
"" os.Stdin is read instead.
*/
func ReadRowsFromFilePath(filepath string, features []*feature.Feature, label string) ([]*dataset.Row, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading rows: %v", err)
		}
		defer f.Close()
	}
	rows, err := ReadRows(f, features, label)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return rows, nil
}

/*
NewWriter takes an io.Writer, a slice of features and the name of the
label column and returns a Writer that will write rows on the io.Writer
with a header naming the features and the label column last.
*/
func NewWriter(writer io.Writer, features []*feature.Feature, label string) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(features)+1)
	for _, f := range features {
		record = append(record, f.Name())
	}
	record = append(record, label)
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteRows takes a writer, a slice of rows, a slice of features and the
name of the label column and dumps the rows in CSV format, specifying only
the features in the given slice. It returns an error if something went
wrong when writing to the writer.
*/
func WriteRows(writer io.Writer, rows []*dataset.Row, features []*feature.Feature, label string) error {
	cw, err := NewWriter(writer, features, label)
	if err != nil {
		return err
	}
	_, err = cw.Write(rows)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parseHeader(header []string, features []*feature.Feature, label string) ([]column, error) {
	columns := make([]column, 0, len(header))
	seen := make(map[string]bool)
	labelSeen := false
	for _, name := range header {
		if name == label {
			if labelSeen {
				return nil, fmt.Errorf("parsing header: duplicated label column %s", name)
			}
			labelSeen = true
			columns = append(columns, column{})
			continue
		}
		f := feature.Find(features, name)
		if f == nil {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("parsing header: duplicated feature %s", name)
		}
		seen[name] = true
		columns = append(columns, column{f})
	}
	if !labelSeen {
		return nil, fmt.Errorf("parsing header: missing label column %s", label)
	}
	for _, f := range features {
		if !seen[f.Name()] {
			return nil, fmt.Errorf("parsing header: missing column for feature %s", f.Name())
		}
	}
	return columns, nil
}

func parseRecord(record []string, columns []column) (*dataset.Row, error) {
	values := make(map[string]float64)
	label := -1
	for i, c := range columns {
		v := record[i]
		if c.f == nil {
			l, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("converting label %s to int: %v", v, err)
			}
			label = l
			continue
		}
		if v == UndefinedValue {
			continue
		}
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("converting %s to float64: %v", v, err)
		}
		if ok, err := c.f.Valid(value); !ok {
			return nil, fmt.Errorf("invalid value %s: %v", v, err)
		}
		values[c.f.Name()] = value
	}
	return dataset.NewRow(values, label)
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(rows []*dataset.Row) (int, error) {
	for n, r := range rows {
		if err := cw.writeRow(r); err != nil {
			return n, err
		}
	}
	return len(rows), nil
}

func (cw *csvWriter) writeRow(r *dataset.Row) error {
	record := make([]string, 0, len(cw.features)+1)
	for _, f := range cw.features {
		v, err := r.ValueFor(f)
		if err != nil {
			record = append(record, UndefinedValue)
			continue
		}
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	record = append(record, strconv.Itoa(r.Label()))
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for row %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
