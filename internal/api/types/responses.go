package types

// APIResponse is the envelope every endpoint returns: status "success" with
// data, or status "error" with a stable code and message. Failures are
// always surfaced this way, never as a silent no-op.
type APIResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Success(data interface{}) APIResponse {
	return APIResponse{Status: "success", Data: data}
}

func Error(code, message string) APIResponse {
	return APIResponse{Status: "error", Code: code, Message: message}
}
