package router

import (
	"errors"
	"net/http"

	"github.com/federation-of-frogs/backend/pkg/errorx"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func statusOf(err error) int {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.Unknown.Code:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
