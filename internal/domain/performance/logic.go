package performance

import (
	"errors"
	"math"
)

var ErrScoreRange = errors.New("metric scores must be between 0 and 100")

// OverallScore is the rounded mean of the metric scores, 0 with no metrics.
func OverallScore(metrics []Metric) int {
	if len(metrics) == 0 {
		return 0
	}
	sum := 0
	for _, m := range metrics {
		sum += m.Score
	}
	return int(math.Round(float64(sum) / float64(len(metrics))))
}

// ApplyScores overwrites the named metric scores. Unknown names are ignored.
func ApplyScores(metrics []Metric, scores map[string]int) ([]Metric, error) {
	out := make([]Metric, len(metrics))
	for i, m := range metrics {
		if score, ok := scores[m.Name]; ok {
			m.Score = score
		}
		if m.Score < 0 || m.Score > 100 {
			return nil, ErrScoreRange
		}
		out[i] = m
	}
	return out, nil
}
