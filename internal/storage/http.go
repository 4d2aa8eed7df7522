package storage

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// HTTPSource fetches documents with a plain GET relative to a base URL.
type HTTPSource struct {
	base   string
	client *http.Client
}

func NewHTTPSource(base string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: strings.TrimSuffix(base, "/"), client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := s.base + "/" + escapePath(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Name: name, URL: u, Err: err}
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		req.Header.Set("Accept", ct)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Name: name, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &FetchError{Name: name, URL: u, Status: resp.StatusCode, Err: ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Name: name, URL: u, Status: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Name: name, URL: u, Err: err}
	}
	return b, nil
}

// escapePath escapes each segment of name so nested documents such as
// img/pele.png keep their slashes.
func escapePath(name string) string {
	segs := strings.Split(name, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}
