package sap

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"scale-sync-api-server/internal/models"
)

const productServicePath = "/sap/opu/odata/sap/API_PRODUCT_SRV/A_Product"

// Các product group prefix được coi là dispensable (cần cân/định lượng).
var dispensablePrefixes = []string{"1CHM", "1OIL"}

// IsDispensable cho biết một product group có thuộc nhóm vật tư
// cần cân hay không. Hàm thuần túy, chỉ phụ thuộc vào group code.
func IsDispensable(group string) bool {
	for _, prefix := range dispensablePrefixes {
		if strings.HasPrefix(group, prefix) {
			return true
		}
	}
	return false
}

// productEnvelope khớp với response OData v2 của API_PRODUCT_SRV.
type productEnvelope struct {
	D struct {
		Product       string `json:"Product"`
		ProductGroup  string `json:"ProductGroup"`
		ToDescription struct {
			Results []struct {
				ProductDescription string `json:"ProductDescription"`
			} `json:"results"`
		} `json:"to_Description"`
	} `json:"d"`
}

// CacheStats là snapshot số liệu của product cache, phục vụ endpoint observability.
type CacheStats struct {
	Size      int    `json:"size"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// Catalog resolve material code thành product master data, có cache
// giới hạn dung lượng trong suốt vòng đời của process. Product master
// thay đổi rất hiếm so với reservation nên cache không cần TTL.
type Catalog struct {
	client   *Client
	capacity int

	mu        sync.Mutex
	cache     map[string]models.Product
	order     []string // thứ tự insert, để evict entry cũ nhất
	hits      uint64
	misses    uint64
	evictions uint64
}

func NewCatalog(client *Client, capacity int) *Catalog {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Catalog{
		client:   client,
		capacity: capacity,
		cache:    make(map[string]models.Product),
	}
}

// Resolve trả về product cho một material code. ok=false nghĩa là SAP
// không có product này hoặc lookup thất bại; caller phải coi đó là
// "bỏ qua khỏi output", không phải lỗi của cả batch.
func (c *Catalog) Resolve(ctx context.Context, code string) (models.Product, bool) {
	c.mu.Lock()
	if p, ok := c.cache[code]; ok {
		c.hits++
		c.mu.Unlock()
		return p, true
	}
	c.misses++
	c.mu.Unlock()

	query := url.Values{}
	query.Set("$expand", "to_Description")
	query.Set("$select", "Product,ProductGroup,to_Description/ProductDescription")
	u := fmt.Sprintf("%s%s('%s')?%s",
		c.client.BaseURL, productServicePath, url.PathEscape(code), query.Encode())

	var envelope productEnvelope
	if err := c.client.GetJSON(ctx, u, &envelope); err != nil {
		if err != ErrNotFound {
			log.Printf("Failed to resolve product %s: %v", code, err)
		}
		return models.Product{}, false
	}

	name := ""
	if len(envelope.D.ToDescription.Results) > 0 {
		name = envelope.D.ToDescription.Results[0].ProductDescription
	}

	product := models.Product{
		Code:  envelope.D.Product,
		Name:  name,
		Group: envelope.D.ProductGroup,
	}

	c.mu.Lock()
	c.insert(code, product)
	c.mu.Unlock()

	return product, true
}

// insert yêu cầu caller đã giữ c.mu.
func (c *Catalog) insert(code string, product models.Product) {
	if _, ok := c.cache[code]; ok {
		c.cache[code] = product
		return
	}
	if len(c.cache) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
		c.evictions++
	}
	c.cache[code] = product
	c.order = append(c.order, code)
}

// Stats trả về snapshot số liệu cache hiện tại.
func (c *Catalog) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Size:      len(c.cache),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
