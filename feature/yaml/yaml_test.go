package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMetadata(t *testing.T) {
	md := []byte(`
label: survived
features:
  fare: continuous
  age: numeric
`)
	metadata, err := ReadMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, "survived", metadata.Label)
	require.Len(t, metadata.Features, 2)
	assert.Equal(t, "age", metadata.Features[0].Name())
	assert.Equal(t, "fare", metadata.Features[1].Name())
}

func TestReadMetadataErrors(t *testing.T) {
	cases := map[string]string{
		"no features":      "label: survived\n",
		"no label":         "features:\n  age: continuous\n",
		"discrete feature": "label: survived\nfeatures:\n  sex: [male, female]\n",
		"unknown type":     "label: survived\nfeatures:\n  age: ordinal\n",
		"label as feature": "label: survived\nfeatures:\n  survived: continuous\n",
		"invalid yml":      "label: [",
	}
	for name, md := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMetadata([]byte(md))
			assert.Error(t, err)
		})
	}
}
