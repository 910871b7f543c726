package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrPreviewNotFound indicates every resolution strategy was exhausted
// without finding a playable preview.
var ErrPreviewNotFound = errors.New("no preview found")

// PreviewNotFoundError provides context for a failed preview resolution.
type PreviewNotFoundError struct {
	Title  string
	Artist string
}

func (e PreviewNotFoundError) Error() string {
	if e.Title == "" && e.Artist == "" {
		return ErrPreviewNotFound.Error()
	}
	return fmt.Sprintf("no preview found for title %q artist %q", e.Title, e.Artist)
}

func (e PreviewNotFoundError) Is(target error) bool {
	return target == ErrPreviewNotFound
}

// PreviewResolver finds a playable preview reference for a title/artist
// pair. It never surfaces transport failures: the only error it returns
// wraps ErrPreviewNotFound.
type PreviewResolver interface {
	Resolve(ctx context.Context, title, artist string) (string, error)
}

// PreviewCache is a best-effort lookup of previously resolved previews.
type PreviewCache interface {
	Lookup(title, artist string) (string, bool)
}
