package service

import (
	"fmt"
	"strings"
	"time"
)

func parseDateStart(date string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t.Format(time.RFC3339), nil
}

func parseDateEndExclusive(date string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t.AddDate(0, 0, 1).Format(time.RFC3339), nil
}
