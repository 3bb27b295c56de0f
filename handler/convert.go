package handler

import (
	"attendance-backend/entity"
	pb "attendance-backend/proto"
)

func toUser(u *entity.User) *pb.User {
	if u == nil {
		return nil
	}
	return &pb.User{
		Id:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		ProfilePicture:  u.ProfilePicture,
		CreatedBy:       u.CreatedBy,
		AssignedTeacher: u.AssignedTeacher,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toUsers(users []*entity.User) []*pb.User {
	out := make([]*pb.User, len(users))
	for i, u := range users {
		out[i] = toUser(u)
	}
	return out
}

func toRecord(r *entity.AttendanceRecord) *pb.AttendanceRecord {
	return &pb.AttendanceRecord{
		Id:        r.ID,
		StudentId: r.StudentID,
		Date:      r.Date,
		Status:    string(r.Status),
		MarkedBy:  r.MarkedBy,
		Notes:     r.Notes,
		Timestamp: r.Timestamp,
	}
}

func toRecords(records []*entity.AttendanceRecord) []*pb.AttendanceRecord {
	out := make([]*pb.AttendanceRecord, len(records))
	for i, r := range records {
		out[i] = toRecord(r)
	}
	return out
}

func toNotification(n *entity.Notification) *pb.Notification {
	return &pb.Notification{
		Id:        n.ID,
		StudentId: n.StudentID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Status:    string(n.Status),
		Date:      n.Date,
		MarkedBy:  n.MarkedBy,
		Read:      n.Read,
		Timestamp: n.Timestamp,
	}
}

func toNotifications(list []*entity.Notification) []*pb.Notification {
	out := make([]*pb.Notification, len(list))
	for i, n := range list {
		out[i] = toNotification(n)
	}
	return out
}

func toDepartments(list []*entity.Department) []*pb.Department {
	out := make([]*pb.Department, len(list))
	for i, d := range list {
		ids := d.TeacherIDs
		if ids == nil {
			ids = []string{}
		}
		out[i] = &pb.Department{
			Id:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			TeacherIds:  ids,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		}
	}
	return out
}

func toCredentialEvents(list []*entity.CredentialEvent) []*pb.CredentialEvent {
	out := make([]*pb.CredentialEvent, len(list))
	for i, e := range list {
		out[i] = &pb.CredentialEvent{
			Id:      e.ID,
			UserId:  e.UserID,
			ActorId: e.ActorID,
			Kind:    string(e.Kind),
			At:      e.At,
		}
	}
	return out
}
