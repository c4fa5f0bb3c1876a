// Package stats computes link-count distributions over a [wiki.Graph].
//
// [Collect] makes one pass over every article and produces three sample
// sequences, each of length PageCount:
//
//   - out-links: links leaving each article
//   - in-links: links arriving from non-redirect articles
//   - in-redirects: links arriving from redirect articles
//
// Redirects are not resolved to their final target. A redirect's own
// outgoing links count as ordinary out-links; only the receiving side is
// split by the kind of the source article.
//
// Each sequence is reduced to a [Summary]. The standard deviation is the
// sample (n-1) deviation and is defined as 0 when there is at most one
// article. An empty graph yields zero summaries with MaxID -1.
package stats
