package scale

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"scale-sync-api-server/config"
	"scale-sync-api-server/internal/models"
)

// ErrDeliveryFailed báo hiệu scale API từ chối hoặc không nhận được payload.
// Payload không được lưu lại và không tự retry; caller quyết định chạy lại.
var ErrDeliveryFailed = errors.New("scale: delivery failed")

// scaleResponse khớp với response body của scale API.
type scaleResponse struct {
	Success bool `json:"Success"`
}

// Dispatcher đẩy job payload sang scale controller API.
type Dispatcher struct {
	APIURL string
	httpc  *http.Client
}

func NewDispatcher(cfg config.ScaleConfig) *Dispatcher {
	return &Dispatcher{
		APIURL: cfg.APIURL,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Deliver POST payload và đọc cờ Success. Status ngoài 2xx hoặc
// Success=false đều là delivery failure.
func (d *Dispatcher) Deliver(ctx context.Context, payload models.JobPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: unexpected status %s", ErrDeliveryFailed, resp.Status)
	}

	var result scaleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrDeliveryFailed, err)
	}
	if !result.Success {
		return fmt.Errorf("%w: scale API returned Success=false", ErrDeliveryFailed)
	}

	return nil
}
