package pathfind

import (
	"errors"
	"fmt"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
)

// ErrNoPath is returned when the target cannot be reached from the start.
var ErrNoPath = errors.New("no path exists")

// NotFoundError reports an article title that is not in the graph.
type NotFoundError struct {
	Title string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such article: %q", e.Title)
}

func notFound(title string) error {
	return apperrors.Wrap(apperrors.ErrCodeNotFound, &NotFoundError{Title: title}, "resolve title")
}

func noPath(start, target int) error {
	return apperrors.Wrap(apperrors.ErrCodeNoPath, ErrNoPath, "search %d -> %d", start, target)
}
