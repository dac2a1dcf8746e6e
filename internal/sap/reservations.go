package sap

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"time"

	"scale-sync-api-server/internal/cursor"
	"scale-sync-api-server/internal/models"
)

const reservationServicePath = "/sap/opu/odata4/sap/api_reservation_document/srvd_a2x/sap/apireservationdocument/0001"

// listPage khớp với một trang kết quả OData v4.
type listPage struct {
	Value    []models.ReservationDocument `json:"value"`
	NextLink string                       `json:"@odata.nextLink"`
}

// CursorStrategy quyết định filter phía server và thời điểm advance cursor.
// Hai chiến lược không được trộn lẫn trong cùng một deployment: ordinal
// advance sau khi fetch (at-least-once cho reservation chưa deliver),
// temporal advance trước khi fetch (at-most-once, không bao giờ gửi trùng).
type CursorStrategy interface {
	Name() string
	// Filter dựng biểu thức $filter từ giá trị cursor đã lưu.
	Filter(cursorValue string) string
	// Begin chạy trước trang đầu tiên; chiến lược advance-before-fetch
	// ghi cursor mới tại đây.
	Begin(store cursor.Store) error
	// Finish chạy sau khi toàn bộ trang đã fetch thành công; trả về danh
	// sách document cho caller và ghi cursor nếu thuộc chế độ advance-after-fetch.
	Finish(store cursor.Store, docs []models.ReservationDocument) ([]models.ReservationDocument, error)
}

// OrdinalStrategy lọc theo reservation ID lớn hơn cursor. Mỗi tick chỉ
// trả về đúng một document cũ nhất nhưng cursor nhảy tới ID mới nhất
// đã thấy, nên một tick là "một job".
type OrdinalStrategy struct{}

func (OrdinalStrategy) Name() string { return "ordinal" }

func (OrdinalStrategy) Filter(cursorValue string) string {
	return fmt.Sprintf("OrderID ne null and Reservation gt '%s'", cursorValue)
}

func (OrdinalStrategy) Begin(cursor.Store) error { return nil }

func (OrdinalStrategy) Finish(store cursor.Store, docs []models.ReservationDocument) ([]models.ReservationDocument, error) {
	if len(docs) == 0 {
		return docs, nil
	}

	sort.Slice(docs, func(i, j int) bool {
		return reservationNumber(docs[i].Reservation) < reservationNumber(docs[j].Reservation)
	})

	last := docs[len(docs)-1].Reservation
	log.Printf("Setting last reservation ID: %s", last)
	if err := store.Write(last); err != nil {
		return nil, err
	}

	return docs[:1], nil
}

// reservationNumber so sánh reservation ID theo giá trị số; ID không
// parse được coi như 0 để không chặn cả batch.
func reservationNumber(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// TemporalStrategy lọc theo thời điểm tạo/sửa sau cursor và advance
// cursor tới "now" trước khi fetch trang đầu tiên.
type TemporalStrategy struct {
	// MovementType là goods movement type cố định của các reservation
	// cần cân (261: goods issue for order).
	MovementType string
	// LocationPrefix lọc storage location theo prefix của khu sản xuất.
	LocationPrefix string
	// Now cho phép test điều khiển đồng hồ; nil dùng time.Now.
	Now func() time.Time
}

func NewTemporalStrategy() *TemporalStrategy {
	return &TemporalStrategy{MovementType: "261", LocationPrefix: "PRD"}
}

func (s *TemporalStrategy) Name() string { return "temporal" }

func (s *TemporalStrategy) Filter(cursorValue string) string {
	since, err := time.Parse(time.RFC3339, cursorValue)
	if err != nil {
		// Cursor hỏng hoặc sentinel "0": sync lại từ epoch.
		since = time.Unix(0, 0).UTC()
	}
	ts := since.UTC().Format(time.RFC3339)

	return fmt.Sprintf(
		"(CreationDateTime gt %s or LastChangeDateTime gt %s)"+
			" and GoodsMovementType eq '%s'"+
			" and startswith(StorageLocation,'%s')"+
			" and YY1_OrderMaterial_RDH ne ''",
		ts, ts, s.MovementType, s.LocationPrefix,
	)
}

func (s *TemporalStrategy) Begin(store cursor.Store) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return store.Write(now().UTC().Format(time.RFC3339))
}

func (s *TemporalStrategy) Finish(_ cursor.Store, docs []models.ReservationDocument) ([]models.ReservationDocument, error) {
	return docs, nil
}

// Fetcher đọc các reservation document mới từ SAP theo cursor.
type Fetcher struct {
	Client   *Client
	Cursor   cursor.Store
	Strategy CursorStrategy
}

// FetchNew đi hết các trang kết quả theo @odata.nextLink và trả về danh
// sách document theo chiến lược cursor. Bất kỳ trang nào lỗi thì cả lần
// fetch thất bại và cursor không được advance thêm.
func (f *Fetcher) FetchNew(ctx context.Context) ([]models.ReservationDocument, error) {
	previous, err := f.Cursor.Read()
	if err != nil {
		return nil, err
	}
	log.Printf("Last reservation cursor (%s): %s", f.Strategy.Name(), previous)

	if err := f.Strategy.Begin(f.Cursor); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("$filter", f.Strategy.Filter(previous))
	query.Set("$expand", "_ReservationDocumentItem($select=Product,ResvnItmRequiredQtyInBaseUnit,BaseUnit)")
	query.Set("$select", "Reservation,OrderID,YY1_OrderMaterial_RDH")

	base := f.Client.BaseURL + reservationServicePath
	next := "ReservationDocument?" + query.Encode()

	var docs []models.ReservationDocument
	for next != "" {
		var page listPage
		if err := f.Client.GetJSON(ctx, base+"/"+next, &page); err != nil {
			return nil, fmt.Errorf("fetch reservations: %w", err)
		}

		log.Printf("Fetched %d reservations, next link: %q", len(page.Value), page.NextLink)

		if len(page.Value) == 0 {
			break
		}
		docs = append(docs, page.Value...)
		next = page.NextLink
	}

	log.Printf("Total reservations fetched: %d", len(docs))

	return f.Strategy.Finish(f.Cursor, docs)
}
