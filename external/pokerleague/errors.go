package pokerleague

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/anthonyrs06/poker-league/internal/usecase"
)

// APIError is an application-level rejection from the backend. Error()
// surfaces the server's detail message verbatim, which is what the views
// show the user.
type APIError struct {
	StatusCode int
	Detail     string

	sentinel error
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var decoded struct {
		Detail string `json:"detail"`
	}
	if err := sonic.Unmarshal(body, &decoded); err == nil {
		apiErr.Detail = decoded.Detail
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.sentinel = usecase.ErrUnauthorized
	case http.StatusNotFound:
		apiErr.sentinel = usecase.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.sentinel = usecase.ErrInvalidInput
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("poker backend rejected the request with status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// UserMessage is the text shown to the player: the backend's detail string,
// unedited.
func (e *APIError) UserMessage() string {
	return e.Error()
}
