package suites

import (
	"slices"
	"sort"

	"github.com/weiihann/statbench/suite"
	"github.com/weiihann/statbench/workload"
)

// Sorting compares sort implementations. Every repetition sorts a fresh
// copy of the same input, restored by the per-iteration setup.
func Sorting(cfg workload.Config) *suite.Suite {
	var input, work []int

	return suite.New("sorting").
		AddFunc("setUp", func() {
			input = workload.NewGenerator(cfg).Ints()
			work = make([]int, len(input))
		}).
		AddFunc("eachSetUp", func() {
			copy(work, input)
		}).
		AddFunc("test_sort_ints", func() {
			sort.Ints(work)
		}).
		AddFunc("test_slices_sort", func() {
			slices.Sort(work)
		}).
		AddFunc("test_insertion_sort", func() {
			insertionSort(work)
		}).
		AddFunc("tearDown", func() {
			input, work = nil, nil
		})
}

func insertionSort(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
