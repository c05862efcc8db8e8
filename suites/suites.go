// Package suites registers the builtin benchmark suites shipped with the
// statbench command. Each suite is also available as a constructor so it
// can be built over a custom workload.
package suites

import (
	"github.com/weiihann/statbench/suite"
	"github.com/weiihann/statbench/workload"
)

// sink keeps routine results observable so the compiler cannot drop them.
var sink any

func init() {
	cfg := workload.DefaultConfig()

	suite.Register(StringBuilding(cfg))
	suite.Register(Sorting(cfg))
	suite.Register(Lookup(cfg))
}

// All builds every builtin suite over cfg.
func All(cfg workload.Config) []*suite.Suite {
	return []*suite.Suite{
		StringBuilding(cfg),
		Sorting(cfg),
		Lookup(cfg),
	}
}
