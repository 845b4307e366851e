package endpoint

import (
	"fmt"
	"math"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// ListInflation godoc
// @Summary      List inflation records
// @Description  Monthly inflation percentages, newest month first
// @Tags         Inflation
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.InflationRecord} "Inflation records fetched"
// @Router       /inflation [get]
func ListInflation(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	records, err := rc.inflationRecords(c)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch inflation records", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Inflation records fetched successfully",
		Data: map[string]interface{}{"total": len(records), "records": records},
	})
}

// CreateInflation godoc
// @Summary      Record the inflation of a month
// @Description  The month is normalised to its first day. Recording a month again replaces its percentage.
// @Tags         Inflation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.InflationRecordRequest true "Inflation record"
// @Success      200 {object} util.APIResponse{data=model.InflationRecord} "Inflation recorded"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Router       /inflation [post]
func CreateInflation(c *gin.Context) {
	var req model.InflationRecordRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}

	month, err := ledger.NormalizeMonth(req.Month)
	if err != nil {
		util.CallLedgerError(c, "Invalid inflation record", err)
		return
	}
	if req.Percentage == nil || math.IsNaN(*req.Percentage) || math.IsInf(*req.Percentage, 0) {
		util.CallLedgerError(c, "Invalid inflation record", invalid("percentage", "is required"))
		return
	}

	record := model.InflationRecord{UserID: rc.ownerID, Month: month, Percentage: *req.Percentage}
	if err := rc.store.UpsertInflation(c.Request.Context(), &record); err != nil {
		util.CallLedgerError(c, "Failed to record inflation", err)
		return
	}
	util.InflationCacheInvalidate(rc.ownerID)
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventInflationRecorded,
		UserID:    rc.ownerID,
		EntityID:  record.ID,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Inflation for %s set to %.2f%%", record.Month, record.Percentage),
		Details:   map[string]interface{}{"month": record.Month, "percentage": record.Percentage},
	})

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Inflation recorded", Data: record})
}

func DeleteInflation(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := rc.store.DeleteInflation(c.Request.Context(), rc.ownerID, id); err != nil {
		util.CallLedgerError(c, "Failed to delete inflation record", err)
		return
	}
	util.InflationCacheInvalidate(rc.ownerID)
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventInflationDeleted,
		UserID:    rc.ownerID,
		EntityID:  id,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Inflation record deleted",
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Inflation record deleted", Data: nil})
}

// InflationSeries godoc
// @Summary      Accumulated inflation
// @Description  Every month in ascending order with the running sum of percentages
// @Tags         Inflation
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=ledger.InflationSeries} "Inflation series"
// @Router       /inflation/series [get]
func InflationSeries(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	records, err := rc.inflationRecords(c)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch inflation records", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Inflation series computed",
		Data: ledger.BuildInflationSeries(records),
	})
}
