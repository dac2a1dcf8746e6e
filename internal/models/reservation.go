package models

import (
	"github.com/shopspring/decimal"
)

// ReservationItem là một dòng vật tư trong reservation document.
// Field tags khớp với payload JSON của SAP OData v4.
type ReservationItem struct {
	Product     string          `json:"Product"`
	RequiredQty decimal.Decimal `json:"ResvnItmRequiredQtyInBaseUnit"`
	BaseUnit    string          `json:"BaseUnit"`
}

// ReservationDocument là một chứng từ đặt vật tư cho một production order,
// được đọc trực tiếp từ SAP và chỉ dùng read-only trong một lần sync.
type ReservationDocument struct {
	Reservation   string            `json:"Reservation"`
	OrderID       string            `json:"OrderID"`
	OrderMaterial string            `json:"YY1_OrderMaterial_RDH"` // material đầu ra của order, có thể rỗng
	Items         []ReservationItem `json:"_ReservationDocumentItem"`
}
