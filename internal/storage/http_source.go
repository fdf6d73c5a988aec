package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PhotoSource retrieves raw photo bytes from wherever profile photos live.
// Decoding is the loader's job, not the source's.
type PhotoSource interface {
	FetchPhoto(ctx context.Context, photoURL string) ([]byte, error)
}

// HTTPPhotoSource fetches photos over plain HTTP(S).
type HTTPPhotoSource struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPPhotoSource creates an HTTP photo source. maxBytes bounds the
// response body so a hostile URL cannot exhaust memory.
func NewHTTPPhotoSource(timeout time.Duration, maxBytes int64) *HTTPPhotoSource {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPPhotoSource{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchPhoto downloads the photo bytes, retrying transient failures up to
// three attempts. 4xx responses are not retried.
func (s *HTTPPhotoSource) FetchPhoto(ctx context.Context, photoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "Photo-Feedback/1.0")

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		data, retryable, err := s.fetchOnce(req)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("failed to fetch photo after retries: %w", lastErr)
}

func (s *HTTPPhotoSource) fetchOnce(req *http.Request) (data []byte, retryable bool, err error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
		if err != nil {
			return nil, true, fmt.Errorf("reading photo body: %w", err)
		}
		return data, false, nil
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("server error: status code %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("client error: status code %d", resp.StatusCode)
	}
}
