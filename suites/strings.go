package suites

import (
	"bytes"
	"strings"

	"github.com/weiihann/statbench/suite"
	"github.com/weiihann/statbench/workload"
)

// StringBuilding compares ways of concatenating many short words.
func StringBuilding(cfg workload.Config) *suite.Suite {
	var words []string

	return suite.New("string_building").
		WithLabel("String building").
		AddFunc("setUp", func() {
			words = workload.NewGenerator(cfg).Words()
		}).
		AddFunc("test_plus_operator", func() {
			s := ""
			for _, w := range words {
				s += w
			}
			sink = s
		}).
		AddFunc("test_strings_builder", func() {
			var b strings.Builder
			for _, w := range words {
				b.WriteString(w)
			}
			sink = b.String()
		}).
		AddFunc("test_bytes_buffer", func() {
			var b bytes.Buffer
			for _, w := range words {
				b.WriteString(w)
			}
			sink = b.String()
		}).
		AddFunc("test_strings_join", func() {
			sink = strings.Join(words, "")
		})
}
