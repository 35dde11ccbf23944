package resource

import (
	stderrs "errors"
	"net/http"

	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

type errorBody struct {
	Detail string            `json:"detail"`
	Code   errors.Code       `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes body as the JSON response. A nil body writes headers only.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteResponse renders a successful operation result.
func WriteResponse(w http.ResponseWriter, resp *Response) {
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	WriteJSON(w, status, resp.Body)
}

// WriteError renders err with the status errors.HTTPStatus assigns to it.
// Messages of unclassified errors are not exposed.
func WriteError(w http.ResponseWriter, err error) {
	body := errorBody{
		Detail: "An unexpected error occurred.",
		Code:   errors.GetCode(err),
	}
	var appErr *errors.AppError
	if stderrs.As(err, &appErr) && appErr.Code != errors.CodeInternal {
		body.Detail = appErr.Message
		body.Fields = appErr.Fields
	}
	WriteJSON(w, errors.HTTPStatus(err), body)
}
