package wiki

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/observability"
)

const (
	// ctxCheckInterval is how many articles are read between context checks.
	ctxCheckInterval = 4096

	// maxLineBytes bounds a single input line.
	maxLineBytes = 1 << 20

	// maxLinkPrealloc caps the link capacity reserved from the header alone;
	// larger files grow the array as links are read.
	maxLinkPrealloc = 1 << 26

	// maxPagePrealloc does the same for the per-article arrays.
	maxPagePrealloc = 1 << 22

	// MaxPages is the largest article count the int32 link storage can address.
	MaxPages = math.MaxInt32
)

// LoadFile opens path and reads a graph from it with [Load].
func LoadFile(ctx context.Context, path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(ctx, f)
}

// Load reads a graph in the line-oriented text format from r.
//
// Arrays are sized from the header, up to a cap, and filled in a single pass. Load
// either returns a complete graph or nil and an error; a partially read
// graph is never exposed. Malformed input yields an INVALID_FORMAT error
// wrapping a [*FormatError]. If ctx is cancelled, Load stops and returns
// ctx.Err(). Load does not close r.
func Load(ctx context.Context, r io.Reader) (*Graph, error) {
	start := time.Now()
	observability.Graph().OnLoadStart(ctx)

	g, err := load(ctx, r)

	pages, links := 0, 0
	if g != nil {
		pages, links = g.PageCount(), g.LinkCount()
	}
	observability.Graph().OnLoadComplete(ctx, pages, links, time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return g, nil
}

func load(ctx context.Context, r io.Reader) (*Graph, error) {
	lr := newLineReader(r)

	header, err := lr.fields()
	if err != nil {
		return nil, lr.fail(err, "header")
	}
	if len(header) < 2 {
		return nil, invalid(formatErrorf(lr.line, "header needs 2 fields (pages, links), got %d", len(header)))
	}
	m, err := lr.count(header[0], "page count", MaxPages)
	if err != nil {
		return nil, err
	}
	total, err := lr.count(header[1], "link count", math.MaxInt)
	if err != nil {
		return nil, err
	}

	g := newGraph(min(m, maxPagePrealloc), min(total, maxLinkPrealloc))
	for i := 0; i < m; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		title, err := lr.next()
		if err != nil {
			return nil, lr.fail(err, "title of article %d", i)
		}
		g.titles = append(g.titles, strings.TrimSpace(title))

		meta, err := lr.fields()
		if err != nil {
			return nil, lr.fail(err, "metadata of article %d", i)
		}
		if len(meta) < 3 {
			return nil, invalid(formatErrorf(lr.line, "article %d: metadata needs 3 fields (size, redirect, links), got %d", i, len(meta)))
		}
		size, err := lr.count(meta[0], "size", math.MaxInt)
		if err != nil {
			return nil, err
		}
		redirect, err := lr.flag(meta[1])
		if err != nil {
			return nil, err
		}
		k, err := lr.count(meta[2], "out-degree", math.MaxInt)
		if err != nil {
			return nil, err
		}
		if k > total-len(g.links) {
			return nil, invalid(formatErrorf(lr.line, "article %d declares %d links, only %d of %d left in header total",
				i, k, total-len(g.links), total))
		}

		g.sizes = append(g.sizes, size)
		g.redirect = append(g.redirect, redirect)
		g.offset = append(g.offset, len(g.links))

		for j := 0; j < k; j++ {
			s, err := lr.next()
			if err != nil {
				return nil, lr.fail(err, "link %d of article %d", j, i)
			}
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, invalid(formatErrorf(lr.line, "link target %q is not an integer", strings.TrimSpace(s)))
			}
			if v < 0 || v >= m {
				return nil, invalid(formatErrorf(lr.line, "link target %d out of range [0,%d)", v, m))
			}
			g.links = append(g.links, int32(v))
		}
	}

	if len(g.links) != total {
		return nil, invalid(formatErrorf(0, "header declares %d links, articles declare %d", total, len(g.links)))
	}
	g.offset = append(g.offset, len(g.links))
	g.buildIndex()
	return g, nil
}

func invalid(fe *FormatError) error {
	return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, fe, "invalid graph file")
}

// lineReader tracks line numbers for error reporting.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &lineReader{sc: sc}
}

// next returns the next line, or io.ErrUnexpectedEOF at end of input.
func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	lr.line++
	return lr.sc.Text(), nil
}

func (lr *lineReader) fields() ([]string, error) {
	s, err := lr.next()
	if err != nil {
		return nil, err
	}
	return strings.Fields(s), nil
}

// fail converts a read error into the error returned by Load. The
// description of the expected line is only formatted on failure.
func (lr *lineReader) fail(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return invalid(formatErrorf(lr.line+1, "unexpected end of file, expected %s", fmt.Sprintf(format, args...)))
	case errors.Is(err, bufio.ErrTooLong):
		return invalid(formatErrorf(lr.line+1, "line longer than %d bytes", maxLineBytes))
	}
	return fmt.Errorf("read graph: %w", err)
}

// count parses a non-negative integer no larger than limit.
func (lr *lineReader) count(s, what string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid(formatErrorf(lr.line, "%s %q is not an integer", what, s))
	}
	if n < 0 {
		return 0, invalid(formatErrorf(lr.line, "%s %d is negative", what, n))
	}
	if n > limit {
		return 0, invalid(formatErrorf(lr.line, "%s %d exceeds limit %d", what, n, limit))
	}
	return n, nil
}

func (lr *lineReader) flag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, invalid(formatErrorf(lr.line, "redirect flag %q must be 0 or 1", s))
}
