package endpoint

import (
	"context"
	"net/http"
	"testing"

	"github.com/fgiusti90/psico-app/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRecordRoutes(r *gin.Engine) {
	r.GET("/patients", ListPatients)
	r.POST("/patients", CreatePatient)
	r.GET("/patients/:id", GetPatient)
	r.PATCH("/patients/:id", UpdatePatient)
	r.DELETE("/patients/:id", DeletePatient)
	r.GET("/treatments", ListTreatments)
	r.POST("/treatments", CreateTreatment)
	r.PATCH("/treatments/:id", UpdateTreatment)
	r.DELETE("/treatments/:id", DeleteTreatment)
	r.GET("/sessions", ListSessions)
	r.POST("/sessions", CreateSession)
	r.PATCH("/sessions/:id", UpdateSession)
	r.PATCH("/sessions/:id/paid", ToggleSessionPaid)
	r.DELETE("/sessions/:id", DeleteSession)
}

func TestCreatePatient(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{name: "valid", body: map[string]interface{}{"name": "  Lucía   Fernández ", "contact": "11 5555-0101"}, status: http.StatusCreated},
		{name: "missing name", body: map[string]interface{}{"contact": "x"}, status: http.StatusBadRequest},
		{name: "blank name", body: map[string]interface{}{"name": "   "}, status: http.StatusBadRequest},
		{name: "bad status", body: map[string]interface{}{"name": "Ana", "status": "gone"}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupEndpointTest(t, testOwner)
			w, resp, err := doRequestWithHandler(r, requestSpec{
				method: http.MethodPost, registerPath: "/patients", requestPath: "/patients", handler: CreatePatient, body: tt.body,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusCreated {
				p := data(t, resp)
				assert.Equal(t, "Lucía Fernández", p["name"])
				assert.Equal(t, "active", p["status"])
				assert.Equal(t, testOwner, p["user_id"])
				assert.NotEmpty(t, p["id"])
			}
		})
	}
}

func TestPatientUpdateAndCascadeDelete(t *testing.T) {
	r, db := setupEndpointTest(t, testOwner)
	registerRecordRoutes(r)
	p, tr := seedTreatment(t, db, "Lucía", 10000)

	w, resp, err := performRequest(r, requestSpec{
		method: http.MethodPatch, requestPath: "/patients/" + p.ID, body: map[string]interface{}{"status": "inactive", "mother_name": "Paula"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Equal(t, "inactive", data(t, resp)["status"])
	assert.Equal(t, "Lucía", data(t, resp)["name"])
	assert.Equal(t, "Paula", data(t, resp)["mother_name"])

	w, _, err = performRequest(r, requestSpec{
		method: http.MethodPost, requestPath: "/sessions", body: map[string]interface{}{"treatment_id": tr.ID, "session_date": "2024-02-01"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _, err = performRequest(r, requestSpec{method: http.MethodDelete, requestPath: "/patients/" + p.ID})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, m := range []interface{}{&model.Patient{}, &model.Treatment{}, &model.Session{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}

	w, _, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/patients/" + p.ID})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTreatmentCreateAndUpdate(t *testing.T) {
	r, db := setupEndpointTest(t, testOwner)
	registerRecordRoutes(r)
	p, _ := seedTreatment(t, db, "Lucía", 10000)

	w, resp, err := performRequest(r, requestSpec{
		method: http.MethodPost, requestPath: "/treatments",
		body: map[string]interface{}{"patient_id": p.ID, "start_date": "2024-05-01", "initial_fee": 15000},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusCreated)
	created := data(t, resp)
	assert.Equal(t, 15000.0, created["current_fee"])
	assert.Equal(t, true, created["is_active"])
	id := created["id"].(string)

	w, _, err = performRequest(r, requestSpec{
		method: http.MethodPatch, requestPath: "/treatments/" + id, body: map[string]interface{}{"initial_fee": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _, err = performRequest(r, requestSpec{
		method: http.MethodPatch, requestPath: "/treatments/" + id, body: map[string]interface{}{"end_date": "2024-04-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp, err = performRequest(r, requestSpec{
		method: http.MethodPatch, requestPath: "/treatments/" + id, body: map[string]interface{}{"end_date": "2024-12-20", "is_active": false},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Equal(t, "2024-12-20", data(t, resp)["end_date"])
	assert.Equal(t, false, data(t, resp)["is_active"])

	w, resp, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/treatments?patient_id=" + p.ID})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	list := data(t, resp)["treatments"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "2024-05-01", list[0].(map[string]interface{})["start_date"])

	w, _, err = performRequest(r, requestSpec{
		method: http.MethodPost, requestPath: "/treatments",
		body: map[string]interface{}{"patient_id": "missing", "start_date": "2024-05-01", "initial_fee": 15000},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	r, db := setupEndpointTest(t, testOwner)
	registerRecordRoutes(r)
	_, tr := seedTreatment(t, db, "Lucía", 10000)

	w, resp, err := performRequest(r, requestSpec{
		method: http.MethodPost, requestPath: "/sessions",
		body: map[string]interface{}{"treatment_id": tr.ID, "session_date": "2024-02-01", "session_type": "parent_interview"},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusCreated)
	created := data(t, resp)
	assert.Equal(t, 10000.0, created["fee_charged"])
	assert.Equal(t, "parent_interview", created["session_type"])
	id := created["id"].(string)

	w, _, err = performRequest(r, requestSpec{
		method: http.MethodPost, requestPath: "/sessions",
		body: map[string]interface{}{"treatment_id": tr.ID, "session_date": "2024-02-01", "session_type": "group"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp, err = performRequest(r, requestSpec{method: http.MethodPatch, requestPath: "/sessions/" + id + "/paid"})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Equal(t, true, data(t, resp)["is_paid"])

	w, resp, err = performRequest(r, requestSpec{
		method: http.MethodPatch, requestPath: "/sessions/" + id, body: map[string]interface{}{"fee_charged": 9000},
	})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Equal(t, 9000.0, data(t, resp)["fee_charged"])
	assert.Equal(t, true, data(t, resp)["is_paid"])

	w, resp, err = performRequest(r, requestSpec{method: http.MethodGet, requestPath: "/sessions?treatment_id=" + tr.ID})
	require.NoError(t, err)
	assertSuccessResponse(t, w, resp, http.StatusOK)
	assert.Equal(t, 1.0, data(t, resp)["total"])

	w, _, err = performRequest(r, requestSpec{method: http.MethodDelete, requestPath: "/sessions/" + id})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = testStore(db).GetSession(context.Background(), testOwner, id)
	assert.Error(t, err)
}
