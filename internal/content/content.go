// Package content loads the puzzle payload a match is created with.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gosimple/slug"
)

var ErrContentNotFound = errors.New("content not found")

//go:embed defaults/*.json
var defaults embed.FS

type Provider interface {
	Content(ctx context.Context, feature, window string) (json.RawMessage, error)
}

// Static serves the same built-in puzzle for every window.
type Static struct {
	files fs.FS
}

func NewStatic() *Static {
	return &Static{files: defaults}
}

func (that *Static) Content(_ context.Context, feature, _ string) (json.RawMessage, error) {
	payload, err := fs.ReadFile(that.files, "defaults/"+slug.Make(feature)+".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, feature)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	return payload, nil
}

// ObjectKey is where the puzzle of feature for window lives in the bucket.
func ObjectKey(prefix, feature, window string) string {
	key := slug.Make(feature) + "/" + window + ".json"
	if prefix == "" {
		return key
	}

	return prefix + "/" + key
}
