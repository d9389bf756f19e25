package mongodataset

import (
	"testing"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func testDataset() *Dataset {
	return &Dataset{features: []*feature.Feature{feature.New("age"), feature.New("fare")}, label: "survived"}
}

func TestDocumentRoundTrip(t *testing.T) {
	mds := testDataset()
	r, err := dataset.NewRow(map[string]float64{"age": 22, "class": 3}, 1)
	require.NoError(t, err)
	doc := mds.document(r)
	assert.Equal(t, bson.M{"age": 22.0, "survived": 1}, doc)

	read, err := mds.row(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"age": 22}, read.Values())
	assert.Equal(t, 1, read.Label())
}

func TestRowConversions(t *testing.T) {
	mds := testDataset()
	r, err := mds.row(bson.M{"age": 30, "fare": int64(8), "survived": false})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"age": 30, "fare": 8}, r.Values())
	assert.Equal(t, 0, r.Label())

	for _, doc := range []bson.M{
		{"age": "thirty", "survived": 1},
		{"age": 30},
		{"age": 30, "survived": 2},
		{"age": 30, "survived": 0.5},
	} {
		_, err = mds.row(doc)
		assert.Error(t, err, "%v", doc)
	}
}

func TestValidateNames(t *testing.T) {
	features := []*feature.Feature{feature.New("age")}
	assert.NoError(t, validateNames(features, "survived"))
	assert.Error(t, validateNames(features, "_id"))
	assert.Error(t, validateNames(features, "a.b"))
	assert.Error(t, validateNames([]*feature.Feature{feature.New("$age")}, "survived"))
}
