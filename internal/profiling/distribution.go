package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Distribution summarizes the present values of a numeric column.
type Distribution struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Outliers int     `json:"outliers"`
}

// AnalyzeDistribution computes the summary statistics of data. data must not be empty.
func AnalyzeDistribution(data []float64) (Distribution, error) {
	var d Distribution

	mean, err := stats.Mean(data)
	if err != nil {
		return d, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return d, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return d, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return d, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return d, err
	}

	// Quartiles for IQR-based outlier detection
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		q25 = min
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = max
	}

	d.Min = min
	d.Max = max
	d.Mean = roundTo(mean, 2)
	d.Median = median
	d.StdDev = roundTo(stdDev, 2)
	d.Q25 = q25
	d.Q75 = q75
	d.Skewness = roundTo(calculateSkewness(data, mean, stdDev), 3)
	d.Outliers = detectOutliers(data, q25, q75)
	return d, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// detectOutliers counts values outside 1.5 IQR of the quartiles
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}

func roundTo(v float64, places int) float64 {
	r, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	return r
}
