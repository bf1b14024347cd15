package models

import "time"

// MarketPrice is one commodity price listing.
type MarketPrice struct {
	ID        int64     `json:"id"`
	Commodity string    `json:"commodity"`
	Market    string    `json:"market"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeatherReport is a simulated reading for a supported location.
type WeatherReport struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
}

// Opportunity is a static export-market listing.
type Opportunity struct {
	Region       string   `json:"region"`
	Products     []string `json:"products"`
	Requirements string   `json:"requirements"`
}

// Statistics are the platform-wide counters shown on the landing page.
type Statistics struct {
	TotalUsers     int `json:"total_users"`
	TotalOrders    int `json:"total_orders"`
	TotalProducts  int `json:"total_products"`
	TotalResources int `json:"total_resources"`
}
