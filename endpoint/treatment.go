package endpoint

import (
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// ListTreatments godoc
// @Summary      List treatments
// @Description  List treatments, newest start date first, optionally for one patient
// @Tags         Treatment
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id query string false "Patient ID"
// @Success      200 {object} util.APIResponse{data=[]model.Treatment} "Treatments fetched"
// @Router       /treatments [get]
func ListTreatments(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	treatments, err := rc.store.ListTreatments(c.Request.Context(), rc.ownerID, c.Query("patient_id"))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch treatments", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Treatments fetched successfully",
		Data: map[string]interface{}{"total": len(treatments), "treatments": treatments},
	})
}

func GetTreatment(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	treatment, err := rc.store.GetTreatment(c.Request.Context(), rc.ownerID, c.Param("id"))
	if err != nil {
		util.CallLedgerError(c, "Failed to fetch treatment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatment fetched successfully", Data: treatment})
}

// CreateTreatment godoc
// @Summary      Create a treatment
// @Description  The current fee starts at the initial fee
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.TreatmentRequest true "Treatment information"
// @Success      201 {object} util.APIResponse{data=model.Treatment} "Treatment created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /treatments [post]
func CreateTreatment(c *gin.Context) {
	var req model.TreatmentRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}

	treatment := model.Treatment{Model: model.Model{UserID: rc.ownerID}}
	if err := applyTreatmentRequest(req, &treatment, true); err != nil {
		util.CallLedgerError(c, "Invalid treatment", err)
		return
	}
	if err := rc.store.CreateTreatment(c.Request.Context(), &treatment); err != nil {
		util.CallLedgerError(c, "Failed to create treatment", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Treatment created", Data: treatment})
}

// UpdateTreatment edits dates, patient and active flag. Fees only move through
// the fee adjustment endpoints.
func UpdateTreatment(c *gin.Context) {
	var req model.TreatmentRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	treatment, err := rc.store.GetTreatment(ctx, rc.ownerID, c.Param("id"))
	if err != nil {
		util.CallLedgerError(c, "Failed to fetch treatment", err)
		return
	}
	if err := applyTreatmentRequest(req, &treatment, false); err != nil {
		util.CallLedgerError(c, "Invalid treatment", err)
		return
	}
	if err := rc.store.SaveTreatment(ctx, &treatment); err != nil {
		util.CallLedgerError(c, "Failed to update treatment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatment updated", Data: treatment})
}

func DeleteTreatment(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	if err := rc.store.DeleteTreatment(c.Request.Context(), rc.ownerID, c.Param("id")); err != nil {
		util.CallLedgerError(c, "Failed to delete treatment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatment deleted", Data: nil})
}
