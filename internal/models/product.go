package models

// Product là dữ liệu product master đã được chuẩn hóa từ SAP.
// Sau khi resolve, Name và Group được coi là bất biến trong suốt
// vòng đời của process (cache không invalidate giữa chừng).
type Product struct {
	Code  string `json:"code"`
	Name  string `json:"name"`  // có thể rỗng nếu SAP không có description
	Group string `json:"group"` // product group, quyết định phân loại dispensable
}
