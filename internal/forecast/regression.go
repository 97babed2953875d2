package forecast

// line is y = Intercept + Slope*x.
type line struct {
	Slope     float64
	Intercept float64
}

func (l line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// fitLine computes the ordinary least squares fit of ys against their index.
// With fewer than two points, or no spread in x, the slope is zero and the
// line is flat at the mean.
func fitLine(ys []float64) line {
	n := float64(len(ys))
	if n == 0 {
		return line{}
	}

	var sumX, sumY float64
	for i, y := range ys {
		sumX += float64(i)
		sumY += y
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, variance float64
	for i, y := range ys {
		dx := float64(i) - meanX
		cov += dx * (y - meanY)
		variance += dx * dx
	}

	if variance == 0 {
		return line{Intercept: meanY}
	}

	slope := cov / variance
	return line{Slope: slope, Intercept: meanY - slope*meanX}
}
