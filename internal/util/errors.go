package util

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 携带 HTTP 状态码和稳定的错误码，由 HandleError 渲染为 {"error": code}
type AppError struct {
	Status int
	Code   string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 按错误码比较，便于 errors.Is(err, util.ErrStepMismatch)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func NewAppError(status int, code string, err error) *AppError {
	return &AppError{Status: status, Code: code, Err: err}
}

// Wrap 保留哨兵错误的状态码与错误码，附加底层原因
func Wrap(sentinel *AppError, err error) *AppError {
	return &AppError{Status: sentinel.Status, Code: sentinel.Code, Err: err}
}

var (
	ErrMissingFields       = NewAppError(http.StatusBadRequest, "missing_fields", nil)
	ErrMissingUserID       = NewAppError(http.StatusBadRequest, "missing_user_id", nil)
	ErrStepMismatch        = NewAppError(http.StatusBadRequest, "step_mismatch", nil)
	ErrSessionNotFound     = NewAppError(http.StatusNotFound, "session_not_found", nil)
	ErrInvalidAction       = NewAppError(http.StatusBadRequest, "invalid_action", nil)
	ErrMissingOption       = NewAppError(http.StatusBadRequest, "missing_option", nil)
	ErrMissingRewrite      = NewAppError(http.StatusBadRequest, "missing_rewrite", nil)
	ErrAnswerOptionFirst   = NewAppError(http.StatusBadRequest, "answer_option_first", nil)
	ErrRewriteFirst        = NewAppError(http.StatusBadRequest, "rewrite_first", nil)
	ErrSessionFinished     = NewAppError(http.StatusBadRequest, "session_finished", nil)
	ErrInvalidState        = NewAppError(http.StatusBadRequest, "invalid_state", nil)
	ErrConcurrentUpdate    = NewAppError(http.StatusConflict, "concurrent_update", nil)
	ErrCheckpointNotFound  = NewAppError(http.StatusNotFound, "checkpoint_not_found", nil)
	ErrCheckpointSubmitted = NewAppError(http.StatusBadRequest, "checkpoint_submitted", nil)
	ErrUnauthorized        = NewAppError(http.StatusUnauthorized, "unauthorized", nil)
	ErrForbidden           = NewAppError(http.StatusForbidden, "forbidden", nil)
	ErrUserNotFound        = NewAppError(http.StatusNotFound, "user_not_found", nil)
	ErrTooManyRequests     = NewAppError(http.StatusTooManyRequests, "too_many_requests", nil)
	ErrGenerationFailed    = NewAppError(http.StatusBadGateway, "generation_failed", nil)
	ErrResetFailed         = NewAppError(http.StatusInternalServerError, "reset_failed", nil)
	ErrInternal            = NewAppError(http.StatusInternalServerError, "internal_error", nil)
)

// AsAppError 提取 AppError；非 AppError 统一视为 500
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternal, err)
}
