package hedgecut

import (
	"math/rand"

	"github.com/pbanos/hedgecut/feature"
)

/*
Sampler is the source of randomness of a tree being grown.

Its Features method takes a slice of candidate features and a number n
and returns n of them drawn without replacement, or all of them if there
are not more than n.

Its Cutoff method takes a feature and the cutoff values precomputed for
it and returns one of them.
*/
type Sampler interface {
	Features(candidates []*feature.Feature, n int) []*feature.Feature
	Cutoff(f *feature.Feature, cutoffs []float64) float64
}

type randomSampler struct {
	r *rand.Rand
}

/*
NewRandomSampler takes a seed and returns a Sampler drawing uniformly
from a math/rand source with that seed.
*/
func NewRandomSampler(seed int64) Sampler {
	return &randomSampler{rand.New(rand.NewSource(seed))}
}

func (rs *randomSampler) Features(candidates []*feature.Feature, n int) []*feature.Feature {
	features := make([]*feature.Feature, len(candidates))
	copy(features, candidates)
	if n > len(features) {
		n = len(features)
	}
	for i := 0; i < n; i++ {
		j := i + rs.r.Intn(len(features)-i)
		features[i], features[j] = features[j], features[i]
	}
	return features[:n]
}

func (rs *randomSampler) Cutoff(f *feature.Feature, cutoffs []float64) float64 {
	return cutoffs[rs.r.Intn(len(cutoffs))]
}
