package errors

import "net/http"

var statusByCode = map[Code]int{
	CodeResourceNotFound:  http.StatusNotFound,
	CodeResourceConflict:  http.StatusConflict,
	CodePermissionDenied:  http.StatusForbidden,
	CodeInvalidInput:      http.StatusBadRequest,
	CodeMethodNotAllowed:  http.StatusMethodNotAllowed,
	CodeNotImplemented:    http.StatusNotImplemented,
	CodePlatformAPIError:  http.StatusBadGateway,
	CodePlatformAuthError: http.StatusBadGateway,
	CodeTimeout:           http.StatusGatewayTimeout,
}

// HTTPStatus maps an error to the response status the API answers with.
// Anything unclassified is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
