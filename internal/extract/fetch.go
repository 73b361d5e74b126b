package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	defaultFetchTimeout  = 20 * time.Second
	defaultMaxFetchBytes = 10 << 20
)

func (e *Extractor) fetch(
	ctx context.Context,
	pageURL string,
) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			e.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", pageURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxFetchBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}

	if int64(len(body)) > e.maxFetchBytes {
		return nil, "", fmt.Errorf("response exceeds %d bytes", e.maxFetchBytes)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
