package model

import "time"

type User struct {
	ID          int64
	Name        string
	RecordCount int
}

type Record struct {
	ID         int64
	UserID     int64
	RecordedAt time.Time
	WeightKg   float64
	HeightM    float64
	BMI        float64
	Category   string
	Notes      string
}
