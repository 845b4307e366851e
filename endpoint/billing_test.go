package endpoint

import (
	"context"
	"net/http"
	"testing"

	"github.com/fgiusti90/psico-app/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func registerBillingRoutes(r *gin.Engine) {
	r.GET("/billing/pending", PendingSessions)
	r.GET("/billing/active-patients", ActivePatients)
	r.GET("/billing/metrics", Metrics)
}

func seedSession(t *testing.T, db *gorm.DB, treatmentID, date string, fee float64, paid bool) {
	t.Helper()
	require.NoError(t, testStore(db).CreateSession(context.Background(), &model.Session{
		Model:       model.Model{UserID: testOwner},
		TreatmentID: treatmentID,
		SessionDate: date,
		SessionType: model.SessionRegular,
		FeeCharged:  fee,
		IsPaid:      paid,
	}))
}

func TestBillingEndpoints(t *testing.T) {
	r, db := setupEndpointTest(t, testOwner)
	registerBillingRoutes(r)
	_, lucia := seedTreatment(t, db, "Lucía", 10000)
	_, mateo := seedTreatment(t, db, "Mateo", 20000)
	seedSession(t, db, lucia.ID, "2024-03-05", 10000, true)
	seedSession(t, db, lucia.ID, "2024-03-12", 10000, false)
	seedSession(t, db, mateo.ID, "2024-02-10", 20000, false)

	w, resp, err := performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/billing/pending"})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	sessions := data(t, resp)["sessions"].([]interface{})
	require.Len(t, sessions, 2)
	assert.Equal(t, "2024-02-10", sessions[0].(map[string]interface{})["session_date"])

	w, resp, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/billing/pending?group=patient"})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	groups := resp["data"].([]interface{})
	require.Len(t, groups, 2)
	assert.Equal(t, 20000.0, groups[0].(map[string]interface{})["total"])

	w, resp, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/billing/active-patients"})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Len(t, resp["data"].([]interface{}), 2)

	w, resp, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/billing/metrics?period=month&year=2024&month=3"})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	report := data(t, resp)
	assert.Equal(t, 2.0, report["total_sessions"])
	assert.Equal(t, 20000.0, report["total_worked"])
	assert.Equal(t, 10000.0, report["total_collected"])
	assert.Equal(t, 50.0, report["collection_rate"])

	w, resp, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/billing/metrics?period=all"})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Equal(t, 3.0, data(t, resp)["total_sessions"])
}

func TestMetrics_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "unknown period", query: "?period=week"},
		{name: "month out of range", query: "?period=month&year=2024&month=13"},
		{name: "non numeric year", query: "?period=year&year=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupEndpointTest(t, testOwner)
			w, _, err := doRequestWithHandler(r, requestSpec{
				method: http.MethodGet, registerPath: "/billing/metrics", requestPath: "/billing/metrics" + tt.query, handler: Metrics,
			})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
