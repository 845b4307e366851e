package endpoint

import (
	"fmt"
	"sync"

	"github.com/fgiusti90/psico-app/middleware"
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/store"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.Nop()
)

// SetLogger sets the logger handed to the store by every handler.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func currentLogger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// requestContext bundles what every handler needs: the store and the owner
// every query is scoped to.
type requestContext struct {
	store   *store.Store
	ownerID string
}

// resolveRequest responds and returns false when the database or the
// authenticated practitioner is missing.
func resolveRequest(c *gin.Context) (requestContext, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return requestContext{}, false
	}
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Authentication required",
			Err: fmt.Errorf("no authenticated practitioner"),
		})
		return requestContext{}, false
	}
	return requestContext{store: store.New(db, currentLogger()), ownerID: ownerID}, true
}

func bindJSONOrRespond(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return false
	}
	return true
}

// inflationRecords returns the owner's inflation records, from the cache when
// it holds them.
func (rc requestContext) inflationRecords(c *gin.Context) ([]model.InflationRecord, error) {
	if records, ok := util.InflationCacheGet(rc.ownerID); ok {
		return records, nil
	}
	records, err := rc.store.ListInflation(c.Request.Context(), rc.ownerID)
	if err != nil {
		return nil, err
	}
	util.InflationCacheSet(rc.ownerID, records)
	return records, nil
}
