package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AttendanceMarked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_marked_total",
		Help: "Attendance marks by status.",
	}, []string{"status"})

	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Notifications created by type.",
	}, []string{"type"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Fan-out attempts that failed and were dropped.",
	})

	UsersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "users_created_total",
		Help: "Accounts created by role.",
	}, []string{"role"})

	UsersDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "users_deleted_total",
		Help: "Accounts removed by cascade deletion, by role.",
	}, []string{"role"})

	SignIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sign_ins_total",
		Help: "Sign-in attempts by result.",
	}, []string{"result"})
)
