package service

import "github.com/saadjs/bmi-cli/internal/model"

type BMISummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// SummarizeBMI computes mean/min/max over a record list. A nil result
// is the "N/A" case: no records, nothing to summarize.
func SummarizeBMI(records []model.Record) *BMISummary {
	if len(records) == 0 {
		return nil
	}
	s := &BMISummary{
		Count: len(records),
		Min:   records[0].BMI,
		Max:   records[0].BMI,
	}
	sum := 0.0
	for _, r := range records {
		sum += r.BMI
		if r.BMI < s.Min {
			s.Min = r.BMI
		}
		if r.BMI > s.Max {
			s.Max = r.BMI
		}
	}
	s.Mean = sum / float64(s.Count)
	return s
}
