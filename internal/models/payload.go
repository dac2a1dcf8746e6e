package models

// Các struct dưới đây khớp với schema JSON của scale controller API,
// field nào cũng bắt buộc nên các giá trị không track được dùng sentinel "N/A".

type JobPayload struct {
	JobList []Job `json:"JOB_LIST"`
}

type Job struct {
	JobNo        string       `json:"JOB_NO"`
	ProductCode  string       `json:"PRODUCT_CODE"`
	ProductName  string       `json:"PRODUCT_NAME"`
	BatchNo      string       `json:"BATCH_NO"`
	BatchWeight  float64      `json:"BATCH_WEIGHT"`
	ScheduleDate string       `json:"SCHEDULE_DATE"`
	Ingredients  []Ingredient `json:"INGREDIENT_LIST"`
}

type Ingredient struct {
	Code string          `json:"INGREDIENT_CODE"`
	Name string          `json:"INGREDIENT_NAME"`
	Lots []IngredientLot `json:"INGREDIENT_LOT"`
}

type IngredientLot struct {
	LotNo            string  `json:"LOT_NO"`
	ExpiryDate       string  `json:"EXPIRY_DATE"`
	ManufacturerName string  `json:"MANUFACTURER_NAME"`
	TargetWeight     float64 `json:"TARGET_WEIGHT"`
	Unit             string  `json:"UNIT"`
}
