package ai

// State is the lifecycle of an AI request as seen by the client.
type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Result reports one AI request. Applied is set once the value has been written into the resume.
type Result struct {
	RequestID string `json:"requestId"`
	Field     string `json:"field,omitempty"`
	State     State  `json:"state"`
	Value     any    `json:"value,omitempty"`
	Error     string `json:"error,omitempty"`
	Applied   bool   `json:"applied"`
}

// Loading is a request still in flight.
func Loading(requestID, field string) Result {
	return Result{RequestID: requestID, Field: field, State: StateLoading}
}

// Succeeded is a completed request.
func Succeeded(requestID, field string, value any, applied bool) Result {
	return Result{RequestID: requestID, Field: field, State: StateSuccess, Value: value, Applied: applied}
}

// Failed is a request whose model call or write-back failed.
func Failed(requestID, field string, err error) Result {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Result{RequestID: requestID, Field: field, State: StateError, Error: msg}
}
