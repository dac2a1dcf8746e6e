package scale

import (
	"context"
	"time"

	"scale-sync-api-server/internal/models"
	"scale-sync-api-server/internal/sap"

	"github.com/shopspring/decimal"
)

const (
	// notAvailable điền vào các field bắt buộc của schema scale mà hệ
	// thống này không track (lot, expiry, manufacturer, batch no).
	notAvailable = "N/A"
	// defaultProductCode dùng khi reservation không có order material.
	defaultProductCode = "0000"
)

// ProductResolver là phần của sap.Catalog mà builder cần.
type ProductResolver interface {
	Resolve(ctx context.Context, code string) (models.Product, bool)
}

// Builder chuyển một batch reservation document thành job payload cho
// scale controller.
type Builder struct {
	Catalog ProductResolver
	// Now cho phép test điều khiển SCHEDULE_DATE; nil dùng time.Now.
	Now func() time.Time
}

// Build áp dụng quy tắc phân loại ingredient và tổng hợp khối lượng:
// chỉ các item có product dispensable trở thành ingredient, job không có
// ingredient nào bị loại hẳn, thứ tự document giữ nguyên, và mọi job
// trong một lần build dùng chung một SCHEDULE_DATE.
func (b *Builder) Build(ctx context.Context, docs []models.ReservationDocument) models.JobPayload {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	scheduleDate := now().UTC().Format(time.RFC3339)

	payload := models.JobPayload{JobList: []models.Job{}}

	for _, doc := range docs {
		job := models.Job{
			JobNo:        doc.Reservation,
			ProductCode:  defaultProductCode,
			ProductName:  "",
			BatchNo:      notAvailable,
			ScheduleDate: scheduleDate,
		}

		if doc.OrderMaterial != "" {
			if product, ok := b.Catalog.Resolve(ctx, doc.OrderMaterial); ok {
				job.ProductCode = product.Code
				job.ProductName = product.Name
			}
		}

		batchWeight := decimal.Zero
		for _, item := range doc.Items {
			product, ok := b.Catalog.Resolve(ctx, item.Product)
			if !ok || !sap.IsDispensable(product.Group) {
				continue
			}

			job.Ingredients = append(job.Ingredients, models.Ingredient{
				Code: item.Product,
				Name: product.Name,
				Lots: []models.IngredientLot{
					{
						LotNo:            notAvailable,
						ExpiryDate:       notAvailable,
						ManufacturerName: notAvailable,
						TargetWeight:     item.RequiredQty.InexactFloat64(),
						Unit:             item.BaseUnit,
					},
				},
			})
			batchWeight = batchWeight.Add(item.RequiredQty)
		}

		// Reservation không có item nào cần cân thì không tạo job.
		if len(job.Ingredients) == 0 {
			continue
		}

		job.BatchWeight = batchWeight.InexactFloat64()
		payload.JobList = append(payload.JobList, job)
	}

	return payload
}
