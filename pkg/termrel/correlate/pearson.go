package correlate

import "math"

// pearson computes the Pearson correlation coefficient of two aligned
// vectors. The second return value is false when the correlation is
// undefined: fewer than two points, or zero variance in either vector.
func pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, false
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	return cov / math.Sqrt(varX*varY), true
}
