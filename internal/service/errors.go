package service

import (
	"errors"
	"net/http"
)

// 错误文案即对外返回的 error 槽位，见 response.Error
var (
	ErrInvalidPayload = errors.New("invalid_payload")
	ErrShareNotFound  = errors.New("not_found")
	ErrUserNotFound   = errors.New("not_found")
	ErrRateLimited    = errors.New("rate_limited")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrVoteSelf       = errors.New("self_vote_forbidden")
	ErrInternal       = errors.New("internal")
)

// ErrorMap 业务错误到 HTTP 状态码的映射
var ErrorMap = map[error]int{
	ErrInvalidPayload: http.StatusBadRequest,
	ErrShareNotFound:  http.StatusNotFound,
	ErrUserNotFound:   http.StatusNotFound,
	ErrRateLimited:    http.StatusTooManyRequests,
	ErrUnauthorized:   http.StatusUnauthorized,
	ErrVoteSelf:       http.StatusBadRequest,
	ErrInternal:       http.StatusInternalServerError,
}
