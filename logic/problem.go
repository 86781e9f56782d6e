package logic

import (
	"fmt"
	"net/http"
)

type ProblemKind int

const (
	ProblemAuthentication ProblemKind = iota
	ProblemDisabledNode
	ProblemValidation
	ProblemNotFound
	ProblemTrustRejected
	ProblemDelivery
)

// Problem is a request the caller got wrong, as opposed to an internal error.
type Problem struct {
	Kind    ProblemKind
	Message string
}

func (p *Problem) Error() string {
	return p.Message
}

func (p *Problem) StatusCode() int {
	switch p.Kind {
	case ProblemAuthentication:
		return http.StatusUnauthorized
	case ProblemDisabledNode, ProblemTrustRejected:
		return http.StatusForbidden
	case ProblemValidation:
		return http.StatusBadRequest
	case ProblemNotFound:
		return http.StatusNotFound
	case ProblemDelivery:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newProblem(kind ProblemKind, format string, args ...any) *Problem {
	return &Problem{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
