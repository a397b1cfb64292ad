package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/spanviz/pkg/observability"
)

// fetchClient is shared by all fetches; traces are small JSON payloads
// so a single pooled client with a hard timeout is enough.
var fetchClient = &http.Client{Timeout: 30 * time.Second}

// IsURL reports whether source names a remote trace rather than a
// local file.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch retrieves url and returns the response body.
//
// Transient failures are retried with exponential backoff: network
// errors, 5xx responses and 429 rate limits. Other non-200 statuses
// fail immediately, so a typo in the URL does not burn three attempts.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
		start := time.Now()
		resp, err := fetchClient.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return &RetryableError{Err: fmt.Errorf("fetch %s: %s", url, resp.Status)}
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: %s", url, resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
