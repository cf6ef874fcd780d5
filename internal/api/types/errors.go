package types

import (
	"net/http"

	appErr "github.com/caresoft/vave-engine/pkg/errors"
)

// FromError converts any error into the error envelope, preserving the
// AppError code when present.
func FromError(err error) APIResponse {
	if err == nil {
		return Error(string(appErr.CodeUnknown), "unknown error")
	}
	if ae, ok := err.(*appErr.AppError); ok {
		return Error(string(ae.Code), ae.Message)
	}
	return Error(string(appErr.CodeUnknown), err.Error())
}

// HTTPStatus maps error codes onto HTTP status codes. Domain conflicts
// (locked project, level limit, root deletion, material state) read as 409.
func HTTPStatus(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeLevelLimitExceeded,
		appErr.CodeInvalidMaterialState,
		appErr.CodeCannotDeleteRoot,
		appErr.CodeProjectLocked,
		appErr.CodeAlreadyCompleted,
		appErr.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
