package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"employeehub/internal/domain/directory"
	"employeehub/internal/platform/metrics"
)

// Dataset origins.
const (
	OriginUpstream = "upstream"
	OriginFallback = "fallback"
)

// Fallback causes, counted separately so the metrics distinguish an
// unreachable upstream from one answering garbage.
const (
	CauseNetwork = "network"
	CauseDecode  = "decode"
	CauseShape   = "shape"
)

const maxResponseBytes = 8 << 20

// Fetcher loads the directory dataset. Returns the records and the origin
// they came from.
type Fetcher interface {
	Fetch(ctx context.Context) ([]directory.Record, string)
}

// Client fetches the dataset from the demo upstream. Any failure, at the
// transport, decode or shape level, degrades to the built-in dataset so a
// login never dead-ends on a broken upstream.
type Client struct {
	httpClient *http.Client
	url        string
	username   string
	password   string
	log        *zap.Logger
	metrics    *metrics.Collector
}

func New(url, username, password string, timeout time.Duration, log *zap.Logger, collector *metrics.Collector) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		username:   username,
		password:   password,
		log:        log,
		metrics:    collector,
	}
}

// Fetch loads the dataset, falling back to the built-in records on any
// failure. It never returns an error: the caller always gets a usable
// dataset.
func (c *Client) Fetch(ctx context.Context) ([]directory.Record, string) {
	body, err := c.request(ctx)
	if err != nil {
		return c.fallback(CauseNetwork, err)
	}

	records, cause, err := decode(body)
	if err != nil {
		return c.fallback(cause, err)
	}

	c.log.Info("dataset loaded from upstream", zap.Int("records", len(records)))
	return records, OriginUpstream
}

func (c *Client) request(ctx context.Context) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post dataset request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) fallback(cause string, err error) ([]directory.Record, string) {
	c.metrics.Fallback(cause)
	c.log.Warn("upstream dataset unavailable, using built-in records",
		zap.String("cause", cause),
		zap.Error(err))
	return directory.FallbackDataset(), OriginFallback
}

// envelope covers the known response shapes: the tabular TABLE_DATA form and
// object collections under data or employees, as either an array or a
// keyed map.
type envelope struct {
	TableData *struct {
		Data [][]any `json:"data"`
	} `json:"TABLE_DATA"`
	Data      json.RawMessage `json:"data"`
	Employees json.RawMessage `json:"employees"`
}

func decode(body []byte) ([]directory.Record, string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, CauseDecode, fmt.Errorf("decode response: %w", err)
	}

	if env.TableData != nil && len(env.TableData.Data) > 0 {
		return directory.FromRows(env.TableData.Data), "", nil
	}

	for _, raw := range []json.RawMessage{env.Data, env.Employees} {
		if len(raw) == 0 {
			continue
		}
		records, err := decodeCollection(raw)
		if err != nil {
			return nil, CauseDecode, err
		}
		if len(records) > 0 {
			return directory.FromObjects(records), "", nil
		}
	}

	return nil, CauseShape, fmt.Errorf("response carries no recognizable dataset")
}

// decodeCollection accepts both an array of records and a map keyed by
// arbitrary ids. Map order is not meaningful, so keyed records are taken in
// sorted key order to keep the dataset deterministic.
func decodeCollection(raw json.RawMessage) ([]directory.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []directory.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode record array: %w", err)
		}
		return records, nil
	}

	var keyed map[string]directory.Record
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, fmt.Errorf("decode record map: %w", err)
	}

	keys := make([]string, 0, len(keyed))
	for key := range keyed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]directory.Record, 0, len(keyed))
	for _, key := range keys {
		records = append(records, keyed[key])
	}
	return records, nil
}
