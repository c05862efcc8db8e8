package harness

import "math/rand"

// buildSchedule returns each routine index repeated each times, shuffled
// with a Fisher-Yates pass over rng.
func buildSchedule(routines, each int, rng *rand.Rand) []int {
	schedule := make([]int, 0, routines*each)
	for i := 0; i < routines; i++ {
		for j := 0; j < each; j++ {
			schedule = append(schedule, i)
		}
	}

	rng.Shuffle(len(schedule), func(i, j int) {
		schedule[i], schedule[j] = schedule[j], schedule[i]
	})

	return schedule
}
