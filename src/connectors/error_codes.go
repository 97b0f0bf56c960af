package connectors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"exchangeclient/src/model"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthenticated means no usable bearer credential. It is raised
// locally, before any request leaves the client, and on a 401 response.
var ErrUnauthenticated = errors.New("missing or expired credential")

// APIError is an authoritative backend refusal. Message is surfaced to the
// user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchange api %d: %s", e.StatusCode, e.Message)
}

// TransportError means no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("exchange api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type apiErrorBody struct {
	Message string `json:"message"`
}

// classify folds a resty response/error pair into the connector error
// taxonomy. A nil return means the request succeeded.
func classify(resp *resty.Response, err error) error {
	if err != nil {
		return &TransportError{Err: err}
	}
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthenticated
	}

	message := ""
	if body, ok := resp.Error().(*apiErrorBody); ok && body != nil {
		message = body.Message
	}
	if message == "" {
		message = strings.TrimSpace(resp.String())
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}

// FailureFor maps a connector error onto the order-workflow failure
// taxonomy. None of these failures are retried automatically.
func FailureFor(err error) *model.SubmitFailure {
	var apiErr *APIError
	var transportErr *TransportError

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return &model.SubmitFailure{
			Reason:  model.FailureUnauthenticated,
			Message: "your session has expired, please sign in again",
		}
	case errors.As(err, &apiErr):
		return &model.SubmitFailure{
			Reason:  model.FailureServerRejected,
			Message: apiErr.Message,
		}
	case errors.As(err, &transportErr):
		return &model.SubmitFailure{
			Reason:  model.FailureNetworkError,
			Message: "could not reach the exchange, check your connection and try again",
		}
	default:
		return &model.SubmitFailure{
			Reason:  model.FailureUnknown,
			Message: err.Error(),
		}
	}
}
