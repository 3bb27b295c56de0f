package entity

import "time"

type NotificationType string

const (
	NotificationAttendance NotificationType = "attendance"
	NotificationGeneral    NotificationType = "general"
)

type Notification struct {
	ID        string           `bson:"_id" json:"id"`
	StudentID string           `bson:"student_id" json:"studentId"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	Status    Status           `bson:"status,omitempty" json:"status,omitempty"`
	Date      string           `bson:"date" json:"date"`
	MarkedBy  string           `bson:"marked_by,omitempty" json:"markedBy,omitempty"`
	Read      bool             `bson:"read" json:"read"`
	Timestamp time.Time        `bson:"timestamp" json:"timestamp"`
}
