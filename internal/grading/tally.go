package grading

// Summary counts answers over a quiz or exam.
type Summary struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

func Tally(total int, results []Result) Summary {
	s := Summary{Total: total}
	for _, r := range results {
		s.Answered++
		if r.IsCorrect {
			s.Correct++
		}
	}
	return s
}
