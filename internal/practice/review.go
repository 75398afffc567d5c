package practice

import "sort"

// Band is the qualitative label for a 0-10 score.
type Band string

const (
	BandStrong   Band = "strong"
	BandAdequate Band = "adequate"
	BandWeak     Band = "weak"
)

// Lower bounds are inclusive.
const (
	strongThreshold   = 8.0
	adequateThreshold = 6.0
)

// BandFor classifies a per-question or average score.
func BandFor(score float64) Band {
	switch {
	case score >= strongThreshold:
		return BandStrong
	case score >= adequateThreshold:
		return BandAdequate
	default:
		return BandWeak
	}
}

type ReviewItem struct {
	Index    int
	Question Question
	Feedback Feedback
	Band     Band
}

// Summary aggregates the feedback store. AverageScore is 0 when nothing has
// been scored yet.
type Summary struct {
	TotalQuestions int
	CompletedCount int
	AverageScore   float64
	Band           Band
	Items          []ReviewItem
}

// Summarize derives review statistics from the questions and scored answers.
// Items are ordered by question index.
func Summarize(questions []Question, feedback map[int]Feedback) Summary {
	sum := Summary{TotalQuestions: len(questions)}

	indices := make([]int, 0, len(feedback))
	for i := range feedback {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	total := 0
	for _, i := range indices {
		f := feedback[i]
		total += f.Score

		var q Question
		if i < len(questions) {
			q = questions[i]
		}
		sum.Items = append(sum.Items, ReviewItem{
			Index:    i,
			Question: q,
			Feedback: f,
			Band:     BandFor(float64(f.Score)),
		})
	}

	sum.CompletedCount = len(indices)
	if sum.CompletedCount > 0 {
		sum.AverageScore = float64(total) / float64(sum.CompletedCount)
	}
	sum.Band = BandFor(sum.AverageScore)
	return sum
}
