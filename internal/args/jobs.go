package args

import "strconv"

// parseJobs validates the value supplied for -j/--jobs: a positive integer.
func parseJobs(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, &ParseError{Kind: KindJobsNaN, Value: value}
	}
	return n, nil
}
