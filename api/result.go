package api

import (
	"net/http"

	"github.com/garnizeh/portfolio/internal/db"
)

// ErrorKind classifies a failed request in the JSON error body.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindConnection    ErrorKind = "connection"
	KindQuery         ErrorKind = "query"
)

// Failure is the body written for every failed request.
type Failure struct {
	Message string    `json:"error"`
	Kind    ErrorKind `json:"kind"`
}

// Result is what a handler produces: either data or a Failure, never both.
type Result struct {
	data any
	fail *Failure
}

func Ok(data any) Result {
	return Result{data: data}
}

func Err(kind ErrorKind, msg string) Result {
	return Result{fail: &Failure{Message: msg, Kind: kind}}
}

// ErrFrom maps a data layer error onto its kind.
func ErrFrom(err error) Result {
	switch {
	case db.IsConfigurationError(err):
		return Err(KindConfiguration, err.Error())
	case db.IsConnectionError(err):
		return Err(KindConnection, err.Error())
	default:
		return Err(KindQuery, err.Error())
	}
}

func (r Result) IsOk() bool { return r.fail == nil }

// Failure returns nil for a successful result.
func (r Result) Failure() *Failure { return r.fail }

// Write sends data with 200 or the failure with 500. There is no other
// status on these routes.
func (r Result) Write(w http.ResponseWriter) {
	if r.fail != nil {
		writeJSON(w, r.fail, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r.data, http.StatusOK)
}
