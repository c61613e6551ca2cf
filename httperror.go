package auth

import (
	"net/http"

	"github.com/goliatone/go-errors"
)

// HTTPError is the structured failure body written at the transport
// boundary. Code is the machine readable key, the remaining fields are for
// humans and logs.
type HTTPError struct {
	Status      int    `json:"status"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

var errorDescriptions = map[string]string{
	TextCodeTokenExpired:     "The authentication token has expired, request a new one and retry.",
	TextCodeTokenNotValid:    "The request carries no usable authentication token.",
	TextCodeTokenDenied:      "The token does not grant the authorities this endpoint requires.",
	TextCodeUserBlocked:      "The account is temporarily blocked.",
	TextCodeUserNotFound:     "No account backs the presented token.",
	TextCodeNotAuthenticated: "The operation requires an authenticated user.",
	TextCodeAccessDenied:     "The authenticated user may not perform this operation.",
	TextCodeOwnership:        "The resource belongs to another user.",
}

// MapError translates any error raised inside the pipeline into the
// structured response body. Errors without a rich taxonomy entry are
// reported as access-denied authentication failures, raw errors never reach
// the client.
func MapError(err error) *HTTPError {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return &HTTPError{
			Status:      http.StatusUnauthorized,
			Code:        TextCodeAccessDenied,
			Message:     "access denied",
			Description: errorDescriptions[TextCodeAccessDenied],
		}
	}

	status := richErr.Code
	if status < http.StatusBadRequest {
		status = http.StatusUnauthorized
	}

	code := richErr.TextCode
	if code == "" {
		code = TextCodeAccessDenied
	}

	return &HTTPError{
		Status:      status,
		Code:        code,
		Message:     richErr.Message,
		Description: errorDescriptions[code],
	}
}
