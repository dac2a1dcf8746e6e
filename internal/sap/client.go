package sap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scale-sync-api-server/config"
)

// ErrNotFound báo hiệu SAP trả về 404 cho một resource đơn lẻ.
var ErrNotFound = errors.New("sap: resource not found")

// Client thực hiện các request GET có basic auth tới SAP OData services.
type Client struct {
	BaseURL  string
	username string
	password string
	httpc    *http.Client
}

func NewClient(cfg config.SAPConfig) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(cfg.APIURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// GetJSON gọi GET url và decode JSON body vào out.
// 404 trả về ErrNotFound; các status lỗi khác trả về lỗi kèm status code.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("sap: build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sap: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("sap: GET %s: unexpected status %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sap: decode response: %w", err)
	}
	return nil
}
