package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ProgressFunc receives whole percents, 0..100, non-decreasing.
type ProgressFunc func(percent int)

// Transport performs one direct PUT of a full file body against a signed URL.
// No retries at this layer; a failed upload stays failed until the user
// re-selects the file.
type Transport interface {
	Upload(ctx context.Context, url string, body io.Reader, size int64, contentType string, onProgress ProgressFunc) error
}

// HTTPTransport uploads over plain HTTP. Progress is reported only when the
// total size is known up front.
type HTTPTransport struct {
	Client *http.Client
}

func NewHTTPTransport() *HTTPTransport {
	// No client timeout: large uploads have no sensible fixed bound, the
	// signed URL's own expiry cuts off stalled transfers.
	return &HTTPTransport{Client: &http.Client{}}
}

func (t *HTTPTransport) Upload(ctx context.Context, url string, body io.Reader, size int64, contentType string, onProgress ProgressFunc) error {
	if size > 0 && onProgress != nil {
		body = &progressReader{r: body, total: size, onProgress: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	if size > 0 {
		req.ContentLength = size
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(data))
	}
	return nil
}

// progressReader emits a percent callback as the request body is consumed,
// only when the percent actually changes.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		percent := int(pr.read * 100 / pr.total)
		if percent > 100 {
			percent = 100
		}
		if percent > pr.last {
			pr.last = percent
			pr.onProgress(percent)
		}
	}
	return n, err
}
