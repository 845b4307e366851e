package endpoint

import (
	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// ListFeeAdjustments returns the fee history of a treatment, latest first.
func ListFeeAdjustments(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	treatmentID := c.Param("id")
	if _, err := rc.store.GetTreatment(ctx, rc.ownerID, treatmentID); err != nil {
		util.CallLedgerError(c, "Failed to fetch treatment", err)
		return
	}
	adjustments, err := rc.store.ListAdjustments(ctx, rc.ownerID, treatmentID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch fee adjustments", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Fee adjustments fetched successfully",
		Data: map[string]interface{}{"total": len(adjustments), "adjustments": adjustments},
	})
}

// runFeeChange loads the owner's snapshot, lets op compute the change and
// commits it. It responds on every failure and returns false.
func runFeeChange(c *gin.Context, rc requestContext, msg string, op func(ledger.Snapshot) (ledger.Change, error)) (ledger.Change, bool) {
	ctx := c.Request.Context()
	snap, err := rc.store.LoadSnapshot(ctx, rc.ownerID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load records", Err: err})
		return ledger.Change{}, false
	}
	change, err := op(snap)
	if err != nil {
		util.CallLedgerError(c, msg, err)
		return ledger.Change{}, false
	}
	if err := rc.store.CommitChange(ctx, change); err != nil {
		util.CallLedgerError(c, msg, err)
		return ledger.Change{}, false
	}
	util.LogFeeChange(change, c.ClientIP(), c.Request.UserAgent())
	return change, true
}

func adjustmentInput(req model.FeeAdjustmentRequest) ledger.AdjustmentInput {
	return ledger.AdjustmentInput{NewFee: req.NewFee, EffectiveDate: req.EffectiveDate, Notes: req.Notes}
}

// ApplyFeeAdjustment godoc
// @Summary      Apply a fee adjustment
// @Description  Records a new fee for the treatment. The percentage is computed against the current fee, which becomes the new fee.
// @Tags         Fee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Treatment ID"
// @Param        request body model.FeeAdjustmentRequest true "New fee and effective date"
// @Success      201 {object} util.APIResponse{data=ledger.Change} "Fee adjusted"
// @Failure      400 {object} util.APIResponse "Invalid fee or date"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Router       /treatments/{id}/adjustments [post]
func ApplyFeeAdjustment(c *gin.Context) {
	var req model.FeeAdjustmentRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	treatmentID := c.Param("id")
	change, ok := runFeeChange(c, rc, "Failed to apply fee adjustment", func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.ApplyAdjustment(snap, treatmentID, adjustmentInput(req))
	})
	if !ok {
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Fee adjusted", Data: change})
}

// EditFeeAdjustment godoc
// @Summary      Edit a fee adjustment
// @Description  Changes the fee and effective date of an adjustment. The treatment's current fee follows when the adjustment is or was the latest.
// @Tags         Fee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Fee adjustment ID"
// @Param        request body model.FeeAdjustmentRequest true "New fee and effective date"
// @Success      200 {object} util.APIResponse{data=ledger.Change} "Fee adjustment updated"
// @Failure      400 {object} util.APIResponse "Invalid fee or date"
// @Failure      404 {object} util.APIResponse "Fee adjustment not found"
// @Router       /adjustments/{id} [put]
func EditFeeAdjustment(c *gin.Context) {
	var req model.FeeAdjustmentRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	adjustmentID := c.Param("id")
	change, ok := runFeeChange(c, rc, "Failed to edit fee adjustment", func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.EditAdjustment(snap, adjustmentID, adjustmentInput(req))
	})
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Fee adjustment updated", Data: change})
}

// DeleteFeeAdjustment godoc
// @Summary      Delete a fee adjustment
// @Description  Deleting the latest adjustment reverts the treatment to the previous fee, or to its initial fee.
// @Tags         Fee
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Fee adjustment ID"
// @Success      200 {object} util.APIResponse{data=ledger.Change} "Fee adjustment deleted"
// @Failure      404 {object} util.APIResponse "Fee adjustment not found"
// @Router       /adjustments/{id} [delete]
func DeleteFeeAdjustment(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	adjustmentID := c.Param("id")
	change, ok := runFeeChange(c, rc, "Failed to delete fee adjustment", func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.DeleteAdjustment(snap, adjustmentID)
	})
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Fee adjustment deleted", Data: change})
}

// SuggestFee projects the next fee of one treatment from the inflation
// accumulated since its latest adjustment.
func SuggestFee(c *gin.Context) {
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
	adjustments, err := rc.store.ListAdjustments(ctx, rc.ownerID, treatment.ID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch fee adjustments", Err: err})
		return
	}
	records, err := rc.inflationRecords(c)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch inflation records", Err: err})
		return
	}
	suggestion, err := ledger.SuggestNextFee(treatment, adjustments, records)
	if err != nil {
		util.CallLedgerError(c, "Failed to compute suggestion", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Fee suggestion computed", Data: suggestion})
}

// FeeBoard godoc
// @Summary      Fee suggestions board
// @Description  Suggestions for every active treatment, most behind inflation first
// @Tags         Fee
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Patient name filter"
// @Success      200 {object} util.APIResponse{data=ledger.SuggestionBoard} "Fee board"
// @Router       /fees [get]
func FeeBoard(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	snap, err := rc.store.LoadSnapshot(c.Request.Context(), rc.ownerID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load records", Err: err})
		return
	}
	util.InflationCacheSet(rc.ownerID, snap.InflationRecords)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Fee board computed",
		Data: ledger.SuggestFees(snap, c.Query("search")),
	})
}
