package entity

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// DateLayout is the calendar day key used by attendance records.
const DateLayout = "2006-01-02"

type AttendanceRecord struct {
	ID        string    `bson:"_id" json:"id"`
	StudentID string    `bson:"student_id" json:"studentId"`
	Date      string    `bson:"date" json:"date"`
	Status    Status    `bson:"status" json:"status"`
	MarkedBy  string    `bson:"marked_by" json:"markedBy"`
	Notes     string    `bson:"notes" json:"notes"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// AttendanceID is the record key for a student on a day. There is at most one
// record per key.
func AttendanceID(studentID, date string) string {
	return studentID + ":" + date
}
