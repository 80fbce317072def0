package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var (
	remoteCache sync.Map
	client      = &http.Client{
		Timeout: 2 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
)

// FetchRemote downloads a YAML catalog from a registry URL. Successful
// fetches are cached per URL for the process lifetime. On any failure the
// built-in catalog is returned together with the error so the caller can log it.
func FetchRemote(ctx context.Context, url string) (*Catalog, error) {
	if url == "" {
		return Default(), nil
	}
	if c, ok := remoteCache.Load(url); ok {
		return c.(*Catalog), nil
	}

	c, err := fetch(ctx, url)
	if err != nil {
		return Default(), err
	}
	remoteCache.Store(url, c)
	return c, nil
}

func fetch(ctx context.Context, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("catalog registry: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog registry: %w", err)
	}
	return c, nil
}
