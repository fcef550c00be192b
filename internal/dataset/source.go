package dataset

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/geo"
)

// ErrNoSource is returned when neither inline cities, a URL nor a path is set.
var ErrNoSource = errors.New("no dataset source configured")

// Source names where a dataset comes from. Inline cities win over URL, URL over Path.
type Source struct {
	Inline []City
	URL    string
	Path   string
}

// LoadSource resolves src in priority order and returns its points.
func LoadSource(ctx context.Context, client *http.Client, src Source) ([]geo.Point, error) {
	switch {
	case len(src.Inline) > 0:
		log.Info().
			Int("records", len(src.Inline)).
			Msg("Using inline cities from config")
		return FromRecords(src.Inline)

	case src.URL != "":
		if client == nil {
			client = http.DefaultClient
		}
		return Fetch(ctx, client, src.URL)

	case src.Path != "":
		return Load(src.Path)
	}

	return nil, ErrNoSource
}
