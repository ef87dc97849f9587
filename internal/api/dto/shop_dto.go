package dto

// QuantityRequest carries the cart mutation quantity.
type QuantityRequest struct {
	Quantity int `form:"quantity" json:"quantity"`
}

// PlaceOrderRequest carries the checkout form.
type PlaceOrderRequest struct {
	DeliveryAddress string `form:"delivery_address" json:"delivery_address"`
}

// OrderStatusRequest carries an admin status transition.
type OrderStatusRequest struct {
	Status string `form:"status" json:"status"`
}

// PlantRequest carries the admin plant form.
type PlantRequest struct {
	Name             string `form:"name" json:"name"`
	Description      string `form:"description" json:"description"`
	Price            string `form:"price" json:"price"`
	StockQuantity    string `form:"stock_quantity" json:"stock_quantity"`
	Category         string `form:"category" json:"category"`
	CareInstructions string `form:"care_instructions" json:"care_instructions"`
	ImageURL         string `form:"image_url" json:"image_url"`
}

// TaskRequest carries the admin task form.
type TaskRequest struct {
	PlantID         string `form:"plant_id" json:"plant_id"`
	CaretakerID     string `form:"caretaker_id" json:"caretaker_id"`
	TaskDescription string `form:"task_description" json:"task_description"`
	ScheduledDate   string `form:"scheduled_date" json:"scheduled_date"`
}

// TaskStatusRequest carries a task status transition.
type TaskStatusRequest struct {
	Status string `form:"status" json:"status"`
}

// MeasurementRequest carries the growth tracker form. Every metric is a raw
// string; empty values become NULL.
type MeasurementRequest struct {
	PlantName       string `form:"plant_name" json:"plant_name"`
	HeightCm        string `form:"height_cm" json:"height_cm"`
	WidthCm         string `form:"width_cm" json:"width_cm"`
	LeafCount       string `form:"leaf_count" json:"leaf_count"`
	StemDiameterMm  string `form:"stem_diameter_mm" json:"stem_diameter_mm"`
	LeafColor       string `form:"leaf_color" json:"leaf_color"`
	LeafCondition   string `form:"leaf_condition" json:"leaf_condition"`
	SunlightHours   string `form:"sunlight_hours" json:"sunlight_hours"`
	TemperatureCels string `form:"temperature_celsius" json:"temperature_celsius"`
	HumidityPercent string `form:"humidity_percent" json:"humidity_percent"`
	Notes           string `form:"notes" json:"notes"`
}

// ChatRequest carries a chatbot question.
type ChatRequest struct {
	Message string `form:"message" json:"message"`
}

// ChatResponse carries the canned advice.
type ChatResponse struct {
	Response string `json:"response"`
}
