package ops_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/internal/ops"
	"attendance-backend/metrics"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type health struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"`
}

func get(checks map[string]ops.Pinger, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ops.NewRouter(checks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

var _ = Describe("Router", func() {
	Specify("healthy when every check passes", func() {
		w := get(map[string]ops.Pinger{"mongo": pinger{}, "redis": pinger{}}, "/healthz")
		Expect(w.Code).To(Equal(http.StatusOK))

		var h health
		Expect(json.Unmarshal(w.Body.Bytes(), &h)).To(Succeed())
		Expect(h.Healthy).To(BeTrue())
		Expect(h.Checks).To(Equal(map[string]string{"mongo": "ok", "redis": "ok"}))
	})

	Specify("unavailable when a check fails", func() {
		w := get(map[string]ops.Pinger{"mongo": pinger{}, "redis": pinger{err: errors.New("connection refused")}}, "/healthz")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var h health
		Expect(json.Unmarshal(w.Body.Bytes(), &h)).To(Succeed())
		Expect(h.Healthy).To(BeFalse())
		Expect(h.Checks["redis"]).To(Equal("connection refused"))
	})

	Specify("exposes metrics", func() {
		metrics.AttendanceMarked.WithLabelValues("present").Inc()

		w := get(nil, "/metrics")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("attendance_marked_total"))
	})
})
