package xapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"github.com/okian/orbit/pkg/metrics"
)

// doWithRetry issues the request with exponential backoff. Transport
// failures, 429s, and 5xx responses are retried up to maxAttempts;
// other 4xx responses fail immediately.
func (c *Client) doWithRetry(ctx context.Context, endpoint string, req *http.Request) (*http.Response, error) {
	attempt := 0
	operation := func() (*http.Response, error) {
		if attempt > 0 {
			metrics.RecordFetchRetry(endpoint)
		}
		attempt++

		resp, err := c.httpClient.Do(req) //nolint:bodyclose // closed below or by the caller
		if err != nil {
			return nil, fmt.Errorf("%s request: %w", endpoint, err)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			_ = resp.Body.Close()
			statusErr := fmt.Errorf("%w: %s status %d", ErrUpstreamStatus, endpoint, resp.StatusCode)
			if retryable(resp.StatusCode) {
				return nil, statusErr
			}
			return nil, backoff.Permanent(statusErr)
		}
		return resp, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxAttempts-1)), //nolint:gosec // maxAttempts is small and positive
		ctx,
	)
	return backoff.RetryWithData(operation, policy)
}

func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
