// Package hist renders integer distributions as SVG histograms.
//
// Samples are counted into equal-width bins spanning [min, max] of the data,
// with every bin half-open except the last, which also includes max. When all
// samples are equal the range is widened to [v-0.5, v+0.5].
//
//	svg := hist.Render(report.Samples.OutLinks,
//	    hist.WithBins(100),
//	    hist.WithLabels("Количество статей", "Количество ссылок"),
//	    hist.WithFill("green", 0.5),
//	)
//
// Use [Write] to save the chart; the file extension selects SVG, PNG or PDF.
package hist
