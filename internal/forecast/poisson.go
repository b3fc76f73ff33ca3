package forecast

import "math"

// Split is one way the remaining runs can land: K more runs in total, AwayRuns of them to the visitors.
type Split struct {
	K           int
	AwayRuns    int
	HomeRuns    int
	Probability float64
}

// poissonSeries returns P(0..n) for the rate, stopping before the first term below epsilon.
func poissonSeries(lambda float64, maxK int, epsilon float64) []float64 {
	if lambda < 0 || maxK < 0 {
		return nil
	}
	out := make([]float64, 0, maxK+1)
	p := math.Exp(-lambda)
	for k := 0; k <= maxK; k++ {
		if k > 0 {
			p = p * lambda / float64(k)
		}
		if p < epsilon {
			break
		}
		out = append(out, p)
	}
	return out
}

// Distribution enumerates every (k, split) outcome with its probability P(k)/(k+1).
// Before any filtering the probabilities sum to just under one.
func Distribution(lambda float64, maxK int, epsilon float64) []Split {
	series := poissonSeries(lambda, maxK, epsilon)
	var out []Split
	for k, pk := range series {
		each := pk / float64(k+1)
		for away := 0; away <= k; away++ {
			out = append(out, Split{K: k, AwayRuns: away, HomeRuns: k - away, Probability: each})
		}
	}
	return out
}
