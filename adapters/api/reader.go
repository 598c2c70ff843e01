// Package api reads the listings table from a JSON REST endpoint.
package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"listingscope/ports"

	"github.com/tidwall/gjson"
)

// Reader fetches every page of an endpoint and flattens the records into a table.
type Reader struct {
	config     ReaderConfig
	httpClient *http.Client
}

var _ ports.TableSource = (*Reader)(nil)

// NewReader creates a reader for the configured endpoint
func NewReader(config ReaderConfig) (*Reader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Reader{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

func (r *Reader) Name() string {
	return r.config.BaseURL
}

// Read retrieves the records and lays them out as rows of strings.
// Columns appear in the order their keys are first seen; absent and null fields are "".
func (r *Reader) Read(ctx context.Context) (*ports.RawTable, error) {
	startTime := time.Now()
	collector := newCollector()
	cursor := ""

	for page := 0; page < r.maxPages(); page++ {
		body, err := r.fetch(ctx, r.buildURL(cursor, page))
		if err != nil {
			return nil, err
		}

		n, err := collector.add(body, r.config.DataPath)
		if err != nil {
			return nil, err
		}

		if !r.hasMorePages(n) {
			break
		}
		if r.config.PaginationType == PaginationCursor {
			if cursor = extractNextCursor(body); cursor == "" {
				break
			}
		}
	}

	table := collector.table()
	log.Printf("[APIReader] Fetched %d records with %d fields from %s in %v",
		len(table.Rows), len(table.Headers), r.config.BaseURL, time.Since(startTime))
	return table, nil
}

func (r *Reader) maxPages() int {
	if r.config.PaginationType == PaginationNone {
		return 1
	}
	return r.config.MaxPages
}

// buildURL constructs the request URL with pagination parameters
func (r *Reader) buildURL(cursor string, page int) string {
	u, _ := url.Parse(r.config.BaseURL)
	q := u.Query()
	switch r.config.PaginationType {
	case PaginationOffset:
		q.Set("offset", strconv.Itoa(page*r.config.PageSize))
		q.Set("limit", strconv.Itoa(r.config.PageSize))
	case PaginationPage:
		q.Set("page", strconv.Itoa(page+1))
		q.Set("per_page", strconv.Itoa(r.config.PageSize))
	case PaginationCursor:
		q.Set("limit", strconv.Itoa(r.config.PageSize))
		if cursor != "" {
			q.Set("cursor", cursor)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (r *Reader) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range r.config.Headers {
		req.Header.Set(k, v)
	}
	if r.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.config.AuthToken)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response from %s is not valid JSON", target)
	}
	return body, nil
}

// hasMorePages determines if there are more pages to fetch
func (r *Reader) hasMorePages(pageRecords int) bool {
	if r.config.PaginationType == PaginationNone {
		return false
	}
	return pageRecords >= r.config.PageSize
}

// extractNextCursor extracts cursor for next page
func extractNextCursor(body []byte) string {
	for _, field := range []string{"next_cursor", "cursor", "next", "continuation_token"} {
		if cursor := gjson.GetBytes(body, field); cursor.Exists() && cursor.String() != "" {
			return cursor.String()
		}
	}
	return ""
}

// collector accumulates records across pages.
type collector struct {
	headers []string
	index   map[string]int
	records []map[string]string
}

func newCollector() *collector {
	return &collector{index: make(map[string]int)}
}

// add appends the records found at dataPath and reports how many there were.
func (c *collector) add(body []byte, dataPath string) (int, error) {
	data := gjson.ParseBytes(body)
	if dataPath != "" {
		data = gjson.GetBytes(body, dataPath)
		if !data.Exists() {
			return 0, fmt.Errorf("data path '%s' not found in response", dataPath)
		}
	}

	switch {
	case data.IsArray():
		n := 0
		var err error
		data.ForEach(func(_, record gjson.Result) bool {
			if !record.IsObject() {
				err = fmt.Errorf("record %d is not an object", len(c.records))
				return false
			}
			c.addRecord(record)
			n++
			return true
		})
		return n, err
	case data.IsObject():
		c.addRecord(data)
		return 1, nil
	default:
		return 0, fmt.Errorf("data path '%s' is not an array or object", dataPath)
	}
}

func (c *collector) addRecord(record gjson.Result) {
	row := make(map[string]string)
	record.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, ok := c.index[name]; !ok {
			c.index[name] = len(c.headers)
			c.headers = append(c.headers, name)
		}
		row[name] = cell(value)
		return true
	})
	c.records = append(c.records, row)
}

func (c *collector) table() *ports.RawTable {
	rows := make([][]string, len(c.records))
	for i, record := range c.records {
		row := make([]string, len(c.headers))
		for j, h := range c.headers {
			row[j] = record[h]
		}
		rows[i] = row
	}
	return &ports.RawTable{Headers: c.headers, Rows: rows}
}

// cell renders a JSON value the way a CSV export would.
func cell(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return ""
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	case gjson.Number:
		return value.Raw
	case gjson.String:
		return value.String()
	default:
		return value.Raw
	}
}
