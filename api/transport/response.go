package transport

// ErrorBody is the JSON error shape every non-2xx response carries.
// Stack is only populated outside production mode.
type ErrorBody struct {
	Type    string `json:"type"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// NewError builds the error body for the given status.
func NewError(status int, message, stack string) ErrorBody {
	return ErrorBody{
		Type:    "error",
		Status:  status,
		Message: message,
		Stack:   stack,
	}
}

// CreatedTask is the body of a successful task creation: the freshly
// generated id only, not the full record.
type CreatedTask struct {
	ID string `json:"id"`
}
