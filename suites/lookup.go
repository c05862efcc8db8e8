package suites

import (
	"slices"

	"github.com/weiihann/statbench/suite"
	"github.com/weiihann/statbench/workload"
)

// Lookup compares membership tests over a set of random keys.
func Lookup(cfg workload.Config) *suite.Suite {
	var (
		keys   []string
		sorted []string
		index  map[string]struct{}
		probes []string
	)

	return suite.New("lookup").
		WithLabel("Key lookup").
		AddFunc("setUp", func() {
			keys = workload.NewGenerator(cfg).Keys()

			sorted = slices.Clone(keys)
			slices.Sort(sorted)

			index = make(map[string]struct{}, len(keys))
			for _, k := range keys {
				index[k] = struct{}{}
			}

			// Half hits, half misses.
			probeCfg := cfg
			probeCfg.Seed++
			probes = append(slices.Clone(keys[:len(keys)/2]),
				workload.NewGenerator(probeCfg).Keys()[:len(keys)/2]...)
		}).
		AddFunc("test_map", func() {
			hits := 0
			for _, p := range probes {
				if _, ok := index[p]; ok {
					hits++
				}
			}
			sink = hits
		}).
		AddFunc("test_binary_search", func() {
			hits := 0
			for _, p := range probes {
				if _, ok := slices.BinarySearch(sorted, p); ok {
					hits++
				}
			}
			sink = hits
		}).
		AddFunc("test_linear_scan", func() {
			hits := 0
			for _, p := range probes {
				if slices.Contains(keys, p) {
					hits++
				}
			}
			sink = hits
		})
}
