package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultRemoteTimeout = 10 * time.Second
	maxRemoteBody        = 4 << 20
)

// RemoteProvider fetches a JSON catalog document over HTTP.
type RemoteProvider struct {
	URL     string
	Timeout time.Duration
	client  *http.Client
}

// NewRemoteProvider creates a provider for url. A nil client uses
// http.DefaultClient.
func NewRemoteProvider(url string, timeout time.Duration, client *http.Client) *RemoteProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteProvider{URL: url, Timeout: timeout, client: client}
}

func (p *RemoteProvider) Assessments(ctx context.Context) ([]Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	return DecodeJSON(data)
}
