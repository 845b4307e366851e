package endpoint

import (
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// ListSessions godoc
// @Summary      List sessions
// @Tags         Session
// @Produce      json
// @Security     BearerAuth
// @Param        treatment_id query string false "Treatment ID"
// @Success      200 {object} util.APIResponse{data=[]model.Session} "Sessions fetched"
// @Router       /sessions [get]
func ListSessions(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	sessions, err := rc.store.ListSessions(c.Request.Context(), rc.ownerID, c.Query("treatment_id"))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch sessions", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Sessions fetched successfully",
		Data: map[string]interface{}{"total": len(sessions), "sessions": sessions},
	})
}

// CreateSession godoc
// @Summary      Record a session
// @Description  fee_charged defaults to the treatment's current fee and is never rewritten by later adjustments
// @Tags         Session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.SessionRequest true "Session information"
// @Success      201 {object} util.APIResponse{data=model.Session} "Session created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Router       /sessions [post]
func CreateSession(c *gin.Context) {
	var req model.SessionRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}

	session := model.Session{Model: model.Model{UserID: rc.ownerID}}
	if err := applySessionRequest(req, &session, true); err != nil {
		util.CallLedgerError(c, "Invalid session", err)
		return
	}
	if err := rc.store.CreateSession(c.Request.Context(), &session); err != nil {
		util.CallLedgerError(c, "Failed to create session", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Session created", Data: session})
}

func UpdateSession(c *gin.Context) {
	var req model.SessionRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	session, err := rc.store.GetSession(ctx, rc.ownerID, c.Param("id"))
	if err != nil {
		util.CallLedgerError(c, "Failed to fetch session", err)
		return
	}
	if err := applySessionRequest(req, &session, false); err != nil {
		util.CallLedgerError(c, "Invalid session", err)
		return
	}
	if err := rc.store.SaveSession(ctx, &session); err != nil {
		util.CallLedgerError(c, "Failed to update session", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Session updated", Data: session})
}

// ToggleSessionPaid flips the paid flag of a session.
func ToggleSessionPaid(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	session, err := rc.store.TogglePaid(c.Request.Context(), rc.ownerID, c.Param("id"))
	if err != nil {
		util.CallLedgerError(c, "Failed to update session", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Session payment updated", Data: session})
}

func DeleteSession(c *gin.Context) {
	rc, ok := resolveRequest(c)
	if !ok {
		return
	}
	if err := rc.store.DeleteSession(c.Request.Context(), rc.ownerID, c.Param("id")); err != nil {
		util.CallLedgerError(c, "Failed to delete session", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Session deleted", Data: nil})
}
