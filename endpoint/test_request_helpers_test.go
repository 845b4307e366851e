package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// requestSpec describes one request against a test router. registerPath and
// handler are only needed by doRequestWithHandler.
type requestSpec struct {
	method       string
	registerPath string
	requestPath  string
	handler      gin.HandlerFunc
	body         interface{}
}

func encodeBody(body interface{}) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		if err := json.NewEncoder(buf).Encode(v); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// performRequest serves spec on r and decodes the JSON envelope, if any.
func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	buf, err := encodeBody(spec.body)
	if err != nil {
		return nil, nil, err
	}
	req := httptest.NewRequest(spec.method, spec.requestPath, buf)
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.Len() == 0 {
		return w, nil, nil
	}
	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		return w, nil, err
	}
	return w, envelope, nil
}

// doRequestWithHandler registers spec.handler on r before serving the request.
func doRequestWithHandler(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	r.Handle(spec.method, spec.registerPath, spec.handler)
	return performRequest(r, spec)
}
