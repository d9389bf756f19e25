/*
Package yaml provides methods to parse feature.Feature specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/pbanos/hedgecut/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata holds the features parsed from a metadata document along with
the name of the binary label column the trees should predict.
*/
type Metadata struct {
	Features []*feature.Feature
	Label    string
}

/*
ReadMetadata takes a slice of bytes with a feature specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object containing a label property with the
name of the binary label column and a features property. The value for
the latter should be an object with a property for each feature with its
name and a string value of 'continuous' (or 'numeric'). Features are
returned sorted by name so that parsing the same document always yields
the same slice.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := struct {
		Label    string
		Features map[string]interface{}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	if metadata.Label == "" {
		return nil, fmt.Errorf("metadata file has no label information")
	}
	names := make([]string, 0, len(metadata.Features))
	for fn := range metadata.Features {
		names = append(names, fn)
	}
	sort.Strings(names)
	result := &Metadata{Label: metadata.Label}
	for _, fn := range names {
		if fn == metadata.Label {
			return nil, fmt.Errorf("label %s cannot be declared as a feature", fn)
		}
		switch value := metadata.Features[fn].(type) {
		case string:
			if value != "continuous" && value != "numeric" {
				return nil, fmt.Errorf("feature %s: unsupported feature type %q", fn, value)
			}
			result.Features = append(result.Features, feature.New(fn))
		default:
			return nil, fmt.Errorf("feature %s: invalid feature declaration of type %T", fn, value)
		}
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return metadata, err
}
