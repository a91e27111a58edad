package routesvc

import "fmt"

// Messages shown when the route service gives no better explanation.
const (
	MsgCalculateFailed = "Failed to calculate route"
	MsgInvalidResponse = "Route service returned an invalid response"
	transportMsgPrefix = "Failed to connect to route service"
)

// ServiceError is an application-level failure: the service answered with
// success:false, a non-2xx status, or a body that is not a usable route.
// Message is ready to show to the user.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// TransportError means the service could not be reached at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", transportMsgPrefix, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
