/*
Package mongodataset stores and loads labeled rows on a MongoDB
database.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	samplesCollectionName = "samples"
)

/*
Dataset gives access to the rows stored as documents on the samples
collection of a MongoDB database. Each document holds a field per
defined feature value and a field for the label.
*/
type Dataset struct {
	session  *mgo.Session
	features []*feature.Feature
	label    string
}

/*
Open takes a MongoDB database session, a slice of features and the name
of the label and returns a Dataset that works on the default database
for that session or an error if the names cannot be used as fields or
the indexes on the samples collection cannot be ensured.
*/
func Open(ctx context.Context, session *mgo.Session, features []*feature.Feature, label string) (*Dataset, error) {
	err := validateNames(features, label)
	if err != nil {
		return nil, err
	}
	mds := &Dataset{session, features, label}
	err = mds.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return mds, nil
}

/*
Count returns the number of documents on the samples collection.
*/
func (mds *Dataset) Count(context.Context) (int, error) {
	return mds.samplesCollection().Count()
}

/*
Write takes a context and a slice of rows and inserts a document for
each on the samples collection. It returns the number of rows written.
*/
func (mds *Dataset) Write(ctx context.Context, rows []*dataset.Row) (int, error) {
	docs := make([]interface{}, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, mds.document(r))
	}
	if len(docs) == 0 {
		return 0, nil
	}
	err := mds.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting rows: %v", err)
	}
	return len(rows), nil
}

/*
Read takes a context and returns a channel on which the rows on the
samples collection are sent and a channel on which an error is sent if
reading fails or the context is done before all rows are sent. Both
channels are closed once done.
*/
func (mds *Dataset) Read(ctx context.Context) (<-chan *dataset.Row, <-chan error) {
	rows := make(chan *dataset.Row)
	errs := make(chan error, 1)
	go func() {
		defer close(rows)
		defer close(errs)
		var doc bson.M
		var err error
		iter := mds.samplesCollection().Find(nil).Sort("$natural").Iter()
	loop:
		for iter.Next(&doc) {
			var r *dataset.Row
			r, err = mds.row(doc)
			if err != nil {
				break
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
				break loop
			case rows <- r:
			}
			doc = nil
		}
		if cerr := iter.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			errs <- err
		}
	}()
	return rows, errs
}

/*
Rows takes a context and returns all the rows on the samples collection
or an error.
*/
func (mds *Dataset) Rows(ctx context.Context) ([]*dataset.Row, error) {
	var result []*dataset.Row
	count, err := mds.Count(ctx)
	if err == nil {
		result = make([]*dataset.Row, 0, count)
	}
	rows, errs := mds.Read(ctx)
	for r := range rows {
		result = append(result, r)
	}
	if err = <-errs; err != nil {
		return nil, err
	}
	return result, nil
}

func (mds *Dataset) document(r *dataset.Row) bson.M {
	doc := make(bson.M)
	for _, f := range mds.features {
		value, err := r.ValueFor(f)
		if err == nil {
			doc[f.Name()] = value
		}
	}
	doc[mds.label] = r.Label()
	return doc
}

func (mds *Dataset) row(doc bson.M) (*dataset.Row, error) {
	values := make(map[string]float64)
	for _, f := range mds.features {
		v, ok := doc[f.Name()]
		if !ok || v == nil {
			continue
		}
		fv, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("reading document %v: feature %s: %v", doc["_id"], f.Name(), err)
		}
		values[f.Name()] = fv
	}
	lv, err := toFloat(doc[mds.label])
	if err != nil {
		return nil, fmt.Errorf("reading document %v: label %s: %v", doc["_id"], mds.label, err)
	}
	r, err := dataset.NewRow(values, int(lv))
	if err != nil || float64(int(lv)) != lv {
		return nil, fmt.Errorf("reading document %v: invalid label %v", doc["_id"], doc[mds.label])
	}
	return r, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("expected a number, got %T value", v)
}

func validateNames(features []*feature.Feature, label string) error {
	for _, name := range append(featureNames(features), label) {
		if name == "_id" {
			return fmt.Errorf("invalid name %q: reserved collection field", "_id")
		}
		if name == "" || strings.ContainsAny(name, ".$") {
			return fmt.Errorf("invalid name %q: empty or contains reserved characters %q or %q", name, ".", "$")
		}
	}
	return nil
}

func (mds *Dataset) ensureIndexes() error {
	index := mgo.Index{
		Key:        []string{mds.label},
		Background: true,
	}
	return mds.samplesCollection().EnsureIndex(index)
}

func featureNames(features []*feature.Feature) []string {
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name())
	}
	return names
}

func (mds *Dataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}
