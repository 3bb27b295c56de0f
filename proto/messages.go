package proto

import "time"

type User struct {
	Id              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	ProfilePicture  string    `json:"profilePicture,omitempty"`
	CreatedBy       string    `json:"createdBy,omitempty"`
	AssignedTeacher string    `json:"assignedTeacher,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AttendanceRecord struct {
	Id        string    `json:"id"`
	StudentId string    `json:"studentId"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	MarkedBy  string    `json:"markedBy"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Notification struct {
	Id        string    `json:"id"`
	StudentId string    `json:"studentId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Status    string    `json:"status,omitempty"`
	Date      string    `json:"date"`
	MarkedBy  string    `json:"markedBy,omitempty"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

type Department struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeacherIds  []string  `json:"teacherIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CredentialEvent struct {
	Id      string    `json:"id"`
	UserId  string    `json:"userId"`
	ActorId string    `json:"actorId,omitempty"`
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
}

// Auth

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

type RefreshTokenRequest struct {
	Token string `json:"token"`
}

type RefreshTokenResponse struct {
	Token string `json:"token"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type ConfirmPasswordResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Directory

type GetUserRequest struct {
	Id string `json:"id"`
}

type ListUsersRequest struct {
	Role string `json:"role,omitempty"`
}

type ListStudentsRequest struct {
	TeacherId string `json:"teacherId"`
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type UpdateProfileRequest struct {
	Id             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type AssignTeacherRequest struct {
	StudentId string `json:"studentId"`
	TeacherId string `json:"teacherId"`
}

type CredentialEventsResponse struct {
	Events []*CredentialEvent `json:"events"`
}

// Attendance

type MarkAttendanceRequest struct {
	StudentId string `json:"studentId"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

type ListAttendanceRequest struct {
	StudentId string `json:"studentId,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type ListForTeacherRequest struct {
	TeacherId string `json:"teacherId"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type ListAttendanceResponse struct {
	Records []*AttendanceRecord `json:"records"`
}

type StatsResponse struct {
	Total          int32 `json:"total"`
	Present        int32 `json:"present"`
	Absent         int32 `json:"absent"`
	Late           int32 `json:"late"`
	PresentPercent int32 `json:"presentPercent"`
}

type DayRequest struct {
	Date      string `json:"date,omitempty"`
	TeacherId string `json:"teacherId,omitempty"`
}

type DailySummaryResponse struct {
	Date     string `json:"date"`
	Total    int32  `json:"total"`
	Present  int32  `json:"present"`
	Absent   int32  `json:"absent"`
	Late     int32  `json:"late"`
	Unmarked int32  `json:"unmarked"`
}

type SubscribeRequest struct {
	StudentId string `json:"studentId"`
}

// Notifications

type ListNotificationsRequest struct {
	StudentId string `json:"studentId"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
}

type MarkReadRequest struct {
	Id string `json:"id"`
}

type SendNotificationRequest struct {
	StudentId string `json:"studentId"`
	Message   string `json:"message"`
}

// Departments

type CreateDepartmentRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TeacherIds  []string `json:"teacherIds,omitempty"`
}

type CreateDepartmentResponse struct {
	Id string `json:"id"`
}

type UpdateDepartmentRequest struct {
	Id          string    `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	TeacherIds  *[]string `json:"teacherIds,omitempty"`
}

type DeleteDepartmentRequest struct {
	Id string `json:"id"`
}

type ListDepartmentsResponse struct {
	Departments []*Department `json:"departments"`
}

// Functions

type CreateUserRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	AssignedTeacher string `json:"assignedTeacher,omitempty"`
}

type CreateUserResponse struct {
	Success bool   `json:"success"`
	Uid     string `json:"uid"`
	Message string `json:"message"`
}

type DeleteUserRequest struct {
	UserId string `json:"userId"`
}

type DeleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
