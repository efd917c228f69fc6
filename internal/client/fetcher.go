package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"videofeed/ingest/internal/config"
	"videofeed/ingest/internal/domain"
	"videofeed/ingest/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Document is a validated JSON value as returned by the feed.
type Document = json.RawMessage

// Fetcher retrieves one JSON document per call.
type Fetcher interface {
	FetchDocument(ctx context.Context, url string) (Document, error)
}

type feedFetcher struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
}

func NewFetcher(cfg config.FeedConfig, proxySupplier proxy.ProxySupplier) Fetcher {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using feed proxy: %s", proxyURL)
		}
	}

	return &feedFetcher{
		rl:         ratelimit.New(max(cfg.MaxRequestsPerSecond, 1)),
		httpClient: client,
	}
}

// FetchDocument GETs url, reads the whole body and parses it as JSON.
// The response body is always closed; a failing close is only logged.
func (f *feedFetcher) FetchDocument(ctx context.Context, url string) (Document, error) {
	f.rl.Take()
	if err := ctx.Err(); err != nil {
		return nil, &domain.TransportError{URL: url, Err: fmt.Errorf("request cancelled: %w", err)}
	}

	resp, err := f.httpClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.TransportError{URL: url, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		return nil, &domain.TransportError{URL: url, Err: err}
	}

	body := resp.RawResponse.Body
	defer func() {
		if cerr := body.Close(); cerr != nil {
			log.Warnf("⚠️ Failed to close feed response body for %s: %v", url, cerr)
		}
	}()

	if resp.IsError() {
		return nil, &domain.TransportError{URL: url, Err: fmt.Errorf("HTTP error: %s", resp.Status())}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &domain.TransportError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return parseDocument(url, data)
}

func parseDocument(url string, data []byte) (Document, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{URL: url, Err: err}
	}

	log.Debugf("Fetched %d bytes from %s", len(data), url)
	return Document(doc), nil
}
