package mdrtf

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const markdownAccept = "text/markdown, text/plain;q=0.9, */*;q=0.1"

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Config  Config
	Options []RenderOption
}

// HTTPRender fetches Markdown with OpenHTTP and writes it as RTF.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("render http: writer is nil")
	}
	body, err := OpenHTTP(ctx, req.Client, req.URL)
	if err != nil {
		return err
	}
	defer body.Close()
	return Render(RenderRequest{
		Reader:  body,
		Writer:  req.Writer,
		Config:  req.Config,
		Options: req.Options,
	})
}

// OpenHTTP GETs a Markdown document over HTTP(S) and returns the response
// body, which the caller must close. A nil client means
// http.DefaultClient. Non-2xx responses are errors.
func OpenHTTP(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if url == "" {
		return nil, fmt.Errorf("render http: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("render http: build request: %w", err)
	}
	switch req.URL.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("render http: unsupported scheme %q", req.URL.Scheme)
	}
	req.Header.Set("Accept", markdownAccept)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render http: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("render http: %s: status %s", url, resp.Status)
	}
	return resp.Body, nil
}
