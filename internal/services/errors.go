package services

import (
	"errors"
	"fmt"
)

// Precondition failures the caller can fix by completing the relevant survey.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrIntakeProfileMissing = errors.New("intake profile not found")
	ErrIntakeProfileExists  = errors.New("intake profile already exists")
	ErrDailyStateMissing    = errors.New("no daily state submitted today")
	ErrTaskNotFound         = errors.New("task not found")
)

// UpstreamError is the single error type the completion client surfaces for
// transport failures and non-2xx responses. Status is 0 when the request
// never produced a response.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("completion upstream error: http %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("completion upstream error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
