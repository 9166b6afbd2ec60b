package analytics

// Median calculates the median with linear interpolation between the two
// middle values for even-length input. Exposed for consumers that report
// headline figures and must match the medians used inside the pipelines.
func Median(values []float64) float64 {
	return computeMedian(values)
}

// computeMean calculates the arithmetic mean of values.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeMedian calculates the median with linear interpolation between the
// two middle values for even-length input. values are copied and sorted
// internally.
func computeMedian(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	insertionSort(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// insertionSort keeps computeMedian allocation-light for the small per-group
// samples this package works with.
func insertionSort(values []float64) {
	for i := 1; i < len(values); i++ {
		v := values[i]
		j := i - 1
		for j >= 0 && values[j] > v {
			values[j+1] = values[j]
			j--
		}
		values[j+1] = v
	}
}

// computeOLSSlope fits an ordinary least-squares line over y with x = index
// 0..n-1 and returns the slope. Returns 0 for fewer than 2 points or a
// degenerate x variance.
func computeOLSSlope(y []float64) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}
