package util

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// Contains reports whether d is present in dl
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func callError(c *gin.Context, status int, params APIErrorParams) {
	msg := ""
	if params.Err != nil {
		msg = params.Err.Error()
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   msg,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusNotFound, params)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusBadRequest, params)
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusInternalServerError, params)
}

// CallUserNotAuthorized is for return API response with status code 401
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusUnauthorized, params)
}

// CallTooManyRequests is for return API response with status code 429
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusTooManyRequests, params)
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallCreated is for return API response with status code 201
func CallCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallLedgerError picks the response for an error coming out of the ledger or
// the store: validation errors are the user's, missing records are 404 and the
// rest is ours.
func CallLedgerError(c *gin.Context, msg string, err error) {
	params := APIErrorParams{Msg: msg, Err: err}
	switch {
	case errors.Is(err, ledger.ErrValidation):
		CallUserError(c, params)
	case errors.Is(err, ledger.ErrNotFound):
		CallErrorNotFound(c, params)
	default:
		CallServerError(c, params)
	}
}

// NormalizeName trims a name and collapses runs of internal whitespace into
// single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
