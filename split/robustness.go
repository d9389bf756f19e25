package split

import "fmt"

/*
Removal identifies a kind of single training sample removal by the label
of the removed sample and the branches it takes on the champion and the
runner-up criteria. The constants are declared in the order removals are
tried: positives before negatives, champion left before champion right,
runner-up left before runner-up right.
*/
type Removal int

const (
	PlusLeftLeft Removal = iota
	PlusLeftRight
	PlusRightLeft
	PlusRightRight
	MinusLeftLeft
	MinusLeftRight
	MinusRightLeft
	MinusRightRight
)

// NumRemovals is the number of different removal kinds.
const NumRemovals = 8

func removalFor(label int, championLeft, runnerupLeft bool) Removal {
	var r Removal
	if label != 1 {
		r += 4
	}
	if !championLeft {
		r += 2
	}
	if !runnerupLeft {
		r++
	}
	return r
}

// Label returns the label of the samples removed with r.
func (r Removal) Label() int {
	if r >= MinusLeftLeft {
		return 0
	}
	return 1
}

// ChampionLeft reports whether r removes samples from the champion left branch.
func (r Removal) ChampionLeft() bool {
	return r&2 == 0
}

// RunnerupLeft reports whether r removes samples from the runner-up left branch.
func (r Removal) RunnerupLeft() bool {
	return r&1 == 0
}

func (r Removal) String() string {
	sign := "+"
	if r.Label() == 0 {
		sign = "-"
	}
	branch := func(left bool) string {
		if left {
			return "L"
		}
		return "R"
	}
	return fmt.Sprintf("%s%s%s", sign, branch(r.ChampionLeft()), branch(r.RunnerupLeft()))
}

/*
Budget holds, for every removal kind, the number of training samples of
that kind. It bounds how many times each kind of removal can be applied
since a sample cannot be removed twice.
*/
type Budget [NumRemovals]int

/*
NewBudget takes the statistics of a champion and a runner-up split and
the samples both were computed on and returns the removal budget for
them or an error if a sample lacks a value for one of the criteria
features.
*/
func NewBudget(champion, runnerup Statistics, samples []Sample) (Budget, error) {
	var b Budget
	for _, s := range samples {
		cl, err := champion.Criterion.SatisfiedBy(s)
		if err != nil {
			return b, fmt.Errorf("computing removal budget: %v", err)
		}
		rl, err := runnerup.Criterion.SatisfiedBy(s)
		if err != nil {
			return b, fmt.Errorf("computing removal budget: %v", err)
		}
		b[removalFor(s.Label(), cl, rl)]++
	}
	return b, nil
}

/*
Contest holds the state of an adversarial search trying to make a
runner-up split overtake a champion split by removing training samples.
*/
type Contest struct {
	Champion Statistics
	Runnerup Statistics
	Budget   Budget
}

/*
NewContest takes the statistics of a champion and a runner-up split and
the samples both were computed on and returns a Contest ready to be
weakened or an error if the removal budget cannot be computed.
*/
func NewContest(champion, runnerup Statistics, samples []Sample) (*Contest, error) {
	b, err := NewBudget(champion, runnerup, samples)
	if err != nil {
		return nil, err
	}
	return &Contest{Champion: champion, Runnerup: runnerup, Budget: b}, nil
}

// Diff returns the current score difference between champion and runner-up.
func (c *Contest) Diff() float64 {
	return ScoreDiff(c.Champion, c.Runnerup)
}

/*
apply takes a removal kind and returns the champion and runner-up
statistics resulting from it and whether the removal is legal, that is,
whether budget and both affected counts allow it.
*/
func (c *Contest) apply(r Removal) (Statistics, Statistics, bool) {
	if c.Budget[r] <= 0 {
		return c.Champion, c.Runnerup, false
	}
	champion, runnerup := c.Champion, c.Runnerup
	champion.Add(r.ChampionLeft(), r.Label(), -1)
	runnerup.Add(r.RunnerupLeft(), r.Label(), -1)
	if !champion.Valid() || !runnerup.Valid() {
		return c.Champion, c.Runnerup, false
	}
	return champion, runnerup, true
}

/*
Weaken tries every legal removal kind and applies the one leaving the
smallest score difference between champion and runner-up, the first one
in declaration order on ties. It returns the removal applied, the
resulting difference and false, or the current difference and true when
no legal removal lowers it.
*/
func (c *Contest) Weaken() (Removal, float64, bool) {
	best := Removal(-1)
	bestDiff := c.Diff()
	var bestChampion, bestRunnerup Statistics
	for r := PlusLeftLeft; r <= MinusRightRight; r++ {
		champion, runnerup, ok := c.apply(r)
		if !ok {
			continue
		}
		diff := ScoreDiff(champion, runnerup)
		if diff < bestDiff {
			best, bestDiff = r, diff
			bestChampion, bestRunnerup = champion, runnerup
		}
	}
	if best < 0 {
		return best, c.Diff(), true
	}
	c.Champion, c.Runnerup = bestChampion, bestRunnerup
	c.Budget[best]--
	return best, bestDiff, false
}

/*
run weakens the contest until the runner-up ties or beats the champion,
no legal removal remains or maxRounds rounds have been executed. A
non-positive maxRounds means no limit. It returns the number of rounds
executed.
*/
func (c *Contest) run(maxRounds int) int {
	rounds := 0
	for maxRounds <= 0 || rounds < maxRounds {
		rounds++
		_, diff, stop := c.Weaken()
		if stop || diff <= 0 {
			break
		}
	}
	return rounds
}

/*
Robustness takes the statistics of a champion and a runner-up split and
the samples they were computed on and returns the number of greedy
removal rounds it took for the runner-up to tie or overtake the champion,
or for no removal to bring it closer. The lower the value the more fragile the
champion's victory. The greedy search gives a heuristic estimate, not
the exact minimum number of removals.
*/
func Robustness(champion, runnerup Statistics, samples []Sample) (int, error) {
	c, err := NewContest(champion, runnerup, samples)
	if err != nil {
		return 0, err
	}
	return c.run(0), nil
}

/*
IsRobust works like Robustness but stops searching once the robustness
is known to exceed the given threshold. It returns whether it does and
the number of rounds executed, which equals the robustness when the
split is not robust and threshold+1 otherwise.
*/
func IsRobust(champion, runnerup Statistics, samples []Sample, threshold int) (bool, int, error) {
	c, err := NewContest(champion, runnerup, samples)
	if err != nil {
		return false, 0, err
	}
	limit := threshold + 1
	if limit < 1 {
		limit = 1
	}
	rounds := c.run(limit)
	return rounds > threshold, rounds, nil
}
