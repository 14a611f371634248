package api

import (
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindAuth
	KindNotFound
	KindBadRequest
	KindServer
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "NETWORK"
	case KindAuth:
		return "AUTH"
	case KindNotFound:
		return "NOT_FOUND"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindServer:
		return "SERVER"
	case KindDecode:
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

// Error is the failure of one API round-trip. Callers branch on Kind;
// anything except a few KindAuth checks treats all kinds the same way:
// keep the previous snapshot and surface the message.
type Error struct {
	Kind   ErrorKind
	Method string
	Path   string
	Status int
	Cause  error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s %s: %s (http %d)", e.Method, e.Path, e.Kind, e.Status)
	}
	return fmt.Sprintf("api: %s %s: %s: %v", e.Method, e.Path, e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func kindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindBadRequest
	}
}
