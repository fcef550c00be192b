package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/geo"
)

// maxBody caps remote dataset downloads.
const maxBody = 32 << 20

// Fetch downloads a JSON city list from url.
func Fetch(ctx context.Context, client *http.Client, url string) ([]geo.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}

	points, err := DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	log.Info().
		Str("url", url).
		Int("points", len(points)).
		Msg("Dataset downloaded")

	return points, nil
}
