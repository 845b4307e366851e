package endpoint

import (
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// ListPatients godoc
// @Summary      List patients
// @Description  List the practitioner's patients ordered by name
// @Tags         Patient
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.Patient} "Patients fetched"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	patients, err := rc.store.ListPatients(c.Request.Context(), rc.ownerID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch patients", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients fetched successfully",
		Data: map[string]interface{}{"total": len(patients), "patients": patients},
	})
}

func GetPatient(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	patient, err := rc.store.GetPatient(c.Request.Context(), rc.ownerID, c.Param("id"))
	if err != nil {
		util.CallLedgerError(c, "Failed to fetch patient", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient fetched successfully", Data: patient})
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.PatientRequest true "Patient information"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [post]
func CreatePatient(c *gin.Context) {
	var req model.PatientRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}

	patient := model.Patient{Model: model.Model{UserID: rc.ownerID}}
	if err := applyPatientRequest(req, &patient, true); err != nil {
		util.CallLedgerError(c, "Invalid patient", err)
		return
	}
	if err := rc.store.CreatePatient(c.Request.Context(), &patient); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create patient", Err: err})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Patient created", Data: patient})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Patient ID"
// @Param        request body model.PatientRequest true "Updated patient information"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [patch]
func UpdatePatient(c *gin.Context) {
	var req model.PatientRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	patient, err := rc.store.GetPatient(ctx, rc.ownerID, c.Param("id"))
	if err != nil {
		util.CallLedgerError(c, "Failed to fetch patient", err)
		return
	}
	if err := applyPatientRequest(req, &patient, false); err != nil {
		util.CallLedgerError(c, "Invalid patient", err)
		return
	}
	if err := rc.store.SavePatient(ctx, &patient); err != nil {
		util.CallLedgerError(c, "Failed to update patient", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient updated", Data: patient})
}

// DeletePatient removes a patient with its treatments, sessions and fee history.
func DeletePatient(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	if err := rc.store.DeletePatient(c.Request.Context(), rc.ownerID, c.Param("id")); err != nil {
		util.CallLedgerError(c, "Failed to delete patient", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient deleted", Data: nil})
}
