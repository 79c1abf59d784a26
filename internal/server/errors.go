// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"net/http"

	"github.com/joomcode/errorx"

	"github.com/sciportal/portal-datastore/internal/datastore"
)

// errorResponse is the error envelope, matching the shape the service has
// always returned.
type errorResponse struct {
	Detail string `json:"detail"`
}

// statusCode maps the error taxonomy to HTTP statuses so callers can tell
// "fix your input" apart from "try again later". A registration that failed
// because a racing caller created the same user mid-workflow still maps to
// a conflict rather than a server error.
func statusCode(err error) int {
	switch {
	case errorx.IsOfType(err, datastore.ValidationError):
		return http.StatusBadRequest
	case errorx.IsOfType(err, datastore.NotFoundError):
		return http.StatusNotFound
	case errorx.IsOfType(err, datastore.ConflictError):
		return http.StatusConflict
	case errorx.IsOfType(err, datastore.ProvisioningError):
		if cause := causeOf(err); cause != nil {
			if errorx.IsOfType(cause, datastore.ConflictError) {
				return http.StatusConflict
			}
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func causeOf(err error) error {
	ex := errorx.Cast(err)
	if ex == nil {
		return nil
	}
	return ex.Cause()
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)

	event := h.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Err(err).
		Msg("Request failed")

	respond(w, status, errorResponse{Detail: publicMessage(err)})
}

// publicMessage keeps stack traces and wrapped causes out of responses;
// errorx renders those into Error() but the message chain is the contract.
func publicMessage(err error) string {
	ex := errorx.Cast(err)
	if ex == nil {
		return err.Error()
	}
	return ex.Message()
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
