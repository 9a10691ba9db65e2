// Package model_selection provides the fold splitters used to cross-validate
// regularization strengths.
package model_selection

import (
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// Splitter partitions n instances into train/test folds. Labels are only
// consulted by splitters that stratify.
type Splitter interface {
	Split(n int, labels []float64) ([]CVFold, error)
	GetNSplits() int
}

// CVFold is one train/test partition of instance indices.
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits instances into NSplits contiguous folds of near-equal size,
// optionally after a seeded shuffle.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewKFold creates a k-fold splitter.
func NewKFold(nSplits int, shuffle bool, randomSeed uint64) *KFold {
	return &KFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// GetNSplits returns the number of folds.
func (kf *KFold) GetNSplits() int { return kf.NSplits }

// Split returns the folds for n instances. The first n%NSplits folds hold
// one extra instance.
func (kf *KFold) Split(n int, _ []float64) ([]CVFold, error) {
	if err := checkSplits(kf.NSplits, n); err != nil {
		return nil, err
	}

	indices := lo.Range(n)
	if kf.Shuffle {
		shuffle(indices, kf.RandomSeed)
	}

	folds := make([]CVFold, kf.NSplits)
	start := 0
	for i, size := range foldSizes(n, kf.NSplits) {
		test := append([]int(nil), indices[start:start+size]...)
		folds[i] = CVFold{TrainIndices: complement(n, test), TestIndices: test}
		start += size
	}
	return folds, nil
}

// StratifiedKFold spreads every label class across the folds in proportion,
// so each test fold sees each class whenever the class has at least NSplits
// members.
type StratifiedKFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, shuffle bool, randomSeed uint64) *StratifiedKFold {
	return &StratifiedKFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// GetNSplits returns the number of folds.
func (skf *StratifiedKFold) GetNSplits() int { return skf.NSplits }

// Split returns stratified folds. len(labels) must equal n.
func (skf *StratifiedKFold) Split(n int, labels []float64) ([]CVFold, error) {
	if err := checkSplits(skf.NSplits, n); err != nil {
		return nil, err
	}
	if len(labels) != n {
		return nil, errors.NewDimensionError("StratifiedKFold.Split", n, len(labels), 0)
	}

	classes := lo.PartitionBy(lo.Range(n), func(i int) float64 { return labels[i] })
	tests := make([][]int, skf.NSplits)
	for _, members := range classes {
		if skf.Shuffle {
			shuffle(members, skf.RandomSeed)
		}
		start := 0
		for i, size := range foldSizes(len(members), skf.NSplits) {
			tests[i] = append(tests[i], members[start:start+size]...)
			start += size
		}
	}

	folds := make([]CVFold, skf.NSplits)
	for i, test := range tests {
		folds[i] = CVFold{TrainIndices: complement(n, test), TestIndices: test}
	}
	return folds, nil
}

func checkSplits(nSplits, n int) error {
	if nSplits < 2 {
		return errors.NewValidationError("nfolds", "must be at least 2", nSplits)
	}
	if nSplits > n {
		return errors.NewValidationError("nfolds", "cannot exceed the number of instances", nSplits)
	}
	return nil
}

func foldSizes(n, k int) []int {
	return lo.Times(k, func(i int) int {
		if i < n%k {
			return n/k + 1
		}
		return n / k
	})
}

func shuffle(indices []int, seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
}

// complement returns 0..n-1 without the test indices, in ascending order.
func complement(n int, test []int) []int {
	held := lo.SliceToMap(test, func(i int) (int, struct{}) { return i, struct{}{} })
	return lo.Filter(lo.Range(n), func(i int, _ int) bool {
		_, ok := held[i]
		return !ok
	})
}
