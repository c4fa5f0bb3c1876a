package hist

// Bin counts samples into bins equal-width buckets and returns the bins+1
// bucket edges with the per-bucket counts. bins below 1 is treated as 1.
// An empty sample set uses the range [0, 1].
func Bin(samples []int, bins int) (edges []float64, counts []int) {
	bins = max(1, bins)

	lo, hi := 0.0, 1.0
	if len(samples) > 0 {
		mn, mx := samples[0], samples[0]
		for _, x := range samples {
			mn = min(mn, x)
			mx = max(mx, x)
		}
		lo, hi = float64(mn), float64(mx)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	counts = make([]int, bins)
	for _, x := range samples {
		i := int((float64(x) - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return edges, counts
}
