package service

import (
	"math"

	"attendance-backend/entity"
)

type Stats struct {
	Total          int
	Present        int
	Absent         int
	Late           int
	PresentPercent int
}

// ComputeStats counts records by status. PresentPercent is rounded and is 0
// for no records.
func ComputeStats(records []*entity.AttendanceRecord) Stats {
	var s Stats
	for _, r := range records {
		s.Total++
		switch r.Status {
		case entity.StatusPresent:
			s.Present++
		case entity.StatusAbsent:
			s.Absent++
		case entity.StatusLate:
			s.Late++
		}
	}
	if s.Total > 0 {
		s.PresentPercent = int(math.Round(float64(s.Present) / float64(s.Total) * 100))
	}
	return s
}

type DailySummary struct {
	Date     string
	Total    int
	Present  int
	Absent   int
	Late     int
	Unmarked int
}
