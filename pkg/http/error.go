package lhttp

import (
	"fmt"
	"net/http"
)

type HttpError struct {
	Code    int
	Message string
	Err     error
}

func FromError(err error) *HttpError {
	if err == nil {
		return nil
	}

	if herr, ok := err.(*HttpError); ok {
		return herr
	}

	return &HttpError{Err: err}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("got code %d and message \"%s\"", e.Code, e.Message)
}

func (e *HttpError) Clone() *HttpError {
	if e == nil {
		return nil
	}
	return &HttpError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
	}
}

func (e *HttpError) NotFound() bool {
	return e != nil && e.Code == http.StatusNotFound
}

func NewNotFound(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

func NewBadRequest(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

func NewInternalError(message string) *HttpError {
	return &HttpError{Code: http.StatusInternalServerError, Message: message}
}
