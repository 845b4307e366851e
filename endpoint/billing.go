package endpoint

import (
	"strconv"
	"time"

	"github.com/fgiusti90/psico-app/billing"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// PendingSessions lists unpaid sessions, oldest first. With group=patient the
// sessions are grouped by patient with the total owed.
func PendingSessions(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	snap, err := rc.store.LoadSnapshot(c.Request.Context(), rc.ownerID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load records", Err: err})
		return
	}
	if c.Query("group") == "patient" {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Pending sessions by patient",
			Data: billing.PendingByPatient(snap),
		})
		return
	}
	pending := billing.PendingSessions(snap.Sessions)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Pending sessions",
		Data: map[string]interface{}{"total": len(pending), "sessions": pending},
	})
}

// ActivePatients pairs every active patient with its active treatment.
func ActivePatients(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	snap, err := rc.store.LoadSnapshot(c.Request.Context(), rc.ownerID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load records", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Active patients",
		Data: billing.ActivePatientsWithTreatment(snap),
	})
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(key, "must be a number")
	}
	return v, nil
}

// Metrics godoc
// @Summary      Billing metrics
// @Description  Sessions worked and collected over a month, a year or all time
// @Tags         Billing
// @Produce      json
// @Security     BearerAuth
// @Param        period query string false "month, year or all" default(month)
// @Param        year query int false "Year, defaults to the current one"
// @Param        month query int false "Month 1-12, defaults to the current one"
// @Param        patient_id query string false "Patient ID"
// @Success      200 {object} util.APIResponse{data=billing.Report} "Metrics"
// @Failure      400 {object} util.APIResponse "Invalid period"
// @Router       /billing/metrics [get]
func Metrics(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	now := time.Now()
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		util.CallLedgerError(c, "Invalid metrics query", err)
		return
	}
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		util.CallLedgerError(c, "Invalid metrics query", err)
		return
	}
	q := billing.MetricsQuery{
		Period:    billing.PeriodType(c.DefaultQuery("period", string(billing.PeriodMonth))),
		Year:      year,
		Month:     month,
		PatientID: c.Query("patient_id"),
	}
	if err := q.Validate(); err != nil {
		util.CallLedgerError(c, "Invalid metrics query", err)
		return
	}

	snap, err := rc.store.LoadSnapshot(c.Request.Context(), rc.ownerID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load records", Err: err})
		return
	}
	report, err := billing.BuildReport(snap, q)
	if err != nil {
		util.CallLedgerError(c, "Failed to build metrics", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Metrics computed", Data: report})
}
