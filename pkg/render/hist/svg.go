package hist

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/wikigraph/pkg/render"
)

const (
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 40.0
	marginBottom = 60.0
	tickLen      = 5.0
	yTicks       = 5
	xTicks       = 5
)

type Option func(*renderer)

type renderer struct {
	bins        int
	title       string
	xlabel      string
	ylabel      string
	fontFamily  string
	fontSize    float64
	fontWeight  string
	fill        string
	alpha       float64
	transparent bool
	width       float64
	height      float64
}

func WithBins(n int) Option          { return func(r *renderer) { r.bins = n } }
func WithTitle(title string) Option  { return func(r *renderer) { r.title = title } }
func WithTransparent(on bool) Option { return func(r *renderer) { r.transparent = on } }

// WithLabels sets the axis captions.
func WithLabels(x, y string) Option {
	return func(r *renderer) { r.xlabel, r.ylabel = x, y }
}

// WithFont sets the text family, size in pixels and weight.
func WithFont(family string, size float64, weight string) Option {
	return func(r *renderer) {
		r.fontFamily = family
		if size > 0 {
			r.fontSize = size
		}
		r.fontWeight = weight
	}
}

// WithFill sets the bar color and its opacity in [0, 1].
func WithFill(color string, alpha float64) Option {
	return func(r *renderer) {
		r.fill = color
		r.alpha = min(1, max(0, alpha))
	}
}

// WithSize sets the canvas size in pixels. Non-positive values are ignored.
func WithSize(width, height float64) Option {
	return func(r *renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		bins:        100,
		fontFamily:  "sans-serif",
		fontSize:    14,
		fontWeight:  "normal",
		fill:        "green",
		alpha:       0.5,
		transparent: true,
		width:       800,
		height:      600,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws the histogram of samples as a standalone SVG document.
func Render(samples []int, opts ...Option) []byte {
	r := newRenderer(opts...)
	edges, counts := Bin(samples, r.bins)

	plotW := max(1, r.width-marginLeft-marginRight)
	plotH := max(1, r.height-marginTop-marginBottom)
	yMax := niceCeil(maxOf(counts))
	lo, hi := edges[0], edges[len(edges)-1]

	xPos := func(v float64) float64 { return marginLeft + (v-lo)/(hi-lo)*plotW }
	yPos := func(c float64) float64 { return marginTop + plotH - c/yMax*plotH }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, `  <g font-family="%s" font-size="%.1f" font-weight="%s">`+"\n",
		escape(r.fontFamily), r.fontSize, escape(r.fontWeight))
	if !r.transparent {
		fmt.Fprintf(&buf, `    <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", r.width, r.height)
	}

	for i, c := range counts {
		if c == 0 {
			continue
		}
		x0, x1 := xPos(edges[i]), xPos(edges[i+1])
		y := yPos(float64(c))
		fmt.Fprintf(&buf, `    <rect class="bar" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.2f"/>`+"\n",
			x0, y, max(x1-x0, 0.5), marginTop+plotH-y, escape(r.fill), r.alpha)
	}

	renderAxes(&buf, &r, plotW, plotH, lo, hi, yMax, xPos, yPos)
	renderCaptions(&buf, &r, plotW, plotH)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// Write renders samples and saves the chart to path.
func Write(path string, samples []int, opts ...Option) error {
	return render.WriteFile(path, Render(samples, opts...))
}

func renderAxes(buf *bytes.Buffer, r *renderer, plotW, plotH, lo, hi, yMax float64,
	xPos, yPos func(float64) float64) {
	bottom := marginTop + plotH
	fmt.Fprintf(buf, `    <path d="M%.2f,%.2f V%.2f H%.2f" fill="none" stroke="black"/>`+"\n",
		marginLeft, marginTop, bottom, marginLeft+plotW)

	for i := 0; i <= xTicks; i++ {
		v := lo + (hi-lo)*float64(i)/xTicks
		x := xPos(v)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n",
			x, bottom, x, bottom+tickLen)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle">%s</text>`+"\n",
			x, bottom+tickLen+r.fontSize, formatTick(v))
	}
	for i := 0; i <= yTicks; i++ {
		c := yMax * float64(i) / yTicks
		y := yPos(c)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black"/>`+"\n",
			marginLeft-tickLen, y, marginLeft, y)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			marginLeft-tickLen-2, y, formatTick(c))
	}
}

func renderCaptions(buf *bytes.Buffer, r *renderer, plotW, plotH float64) {
	cx := marginLeft + plotW/2
	if r.title != "" {
		fmt.Fprintf(buf, `    <text class="title" x="%.2f" y="%.2f" text-anchor="middle">%s</text>`+"\n",
			cx, marginTop/2+r.fontSize/2, escape(r.title))
	}
	if r.xlabel != "" {
		fmt.Fprintf(buf, `    <text class="xlabel" x="%.2f" y="%.2f" text-anchor="middle">%s</text>`+"\n",
			cx, r.height-r.fontSize/2, escape(r.xlabel))
	}
	if r.ylabel != "" {
		cy := marginTop + plotH/2
		fmt.Fprintf(buf, `    <text class="ylabel" x="%.2f" y="%.2f" text-anchor="middle" transform="rotate(-90 %.2f %.2f)">%s</text>`+"\n",
			r.fontSize, cy, r.fontSize, cy, escape(r.ylabel))
	}
}

func maxOf(counts []int) int {
	m := 0
	for _, c := range counts {
		m = max(m, c)
	}
	return m
}

// niceCeil rounds n up to 1, 2, 2.5 or 5 times a power of ten.
func niceCeil(n int) float64 {
	if n <= 0 {
		return 1
	}
	v := float64(n)
	p := math.Pow(10, math.Floor(math.Log10(v)))
	for _, f := range []float64{1, 2, 2.5, 5, 10} {
		if f*p >= v {
			return f * p
		}
	}
	return 10 * p
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
