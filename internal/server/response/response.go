// Package response provides the JSON:API documents written by the optimade
// server. Every response carries a meta object; failures carry an errors list
// instead of data.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/logging"
)

// Document is a top-level JSON:API document.
type Document struct {
	Data     any     `json:"data"`
	Meta     Meta    `json:"meta"`
	Links    *Links  `json:"links,omitempty"`
	Included []any   `json:"included,omitempty"`
	Errors   []Error `json:"errors,omitempty"`
}

// Meta is the meta object of every document.
type Meta struct {
	Query             Query     `json:"query"`
	APIVersion        string    `json:"api_version"`
	TimeStamp         string    `json:"time_stamp"`
	DataReturned      int       `json:"data_returned"`
	DataAvailable     *int      `json:"data_available,omitempty"`
	MoreDataAvailable bool      `json:"more_data_available"`
	Provider          *Provider `json:"provider,omitempty"`
	Warnings          []Warning `json:"warnings,omitempty"`
}

// Query echoes the request the document answers.
type Query struct {
	Representation string `json:"representation"`
}

// Provider describes the database behind this server.
type Provider struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Prefix      string `json:"prefix"`
	Homepage    string `json:"homepage,omitempty"`
}

// Warning is a non-fatal problem with the request.
type Warning struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Links holds pagination links.
type Links struct {
	Next *string `json:"next"`
}

// Error is a JSON:API error object.
type Error struct {
	Status string       `json:"status"`
	Title  string       `json:"title"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
}

// ErrorSource points at the query parameter that caused an error.
type ErrorSource struct {
	Parameter string `json:"parameter"`
}

// NewMeta builds the meta object for a response to r.
func NewMeta(r *http.Request, returned int, available *int, more bool) Meta {
	return Meta{
		Query:             Query{Representation: representation(r)},
		APIVersion:        constants.APIVersion,
		TimeStamp:         time.Now().UTC().Format(constants.TimeFormatISO8601),
		DataReturned:      returned,
		DataAvailable:     available,
		MoreDataAvailable: more,
	}
}

func representation(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

// JSON writes a document with the given status code.
func JSON(w http.ResponseWriter, status int, doc Document) {
	w.Header().Set("Content-Type", constants.MediaType)
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(doc)
}

// OK writes a successful document with 200 status.
func OK(w http.ResponseWriter, doc Document) {
	JSON(w, http.StatusOK, doc)
}

// Fail writes an error document.
func Fail(w http.ResponseWriter, r *http.Request, status int, detail, parameter string) {
	e := Error{
		Status: strconv.Itoa(status),
		Title:  http.StatusText(status),
		Detail: detail,
	}
	if parameter != "" {
		e.Source = &ErrorSource{Parameter: parameter}
	}
	JSON(w, status, Document{
		Data:   nil,
		Meta:   NewMeta(r, 0, nil, false),
		Errors: []Error{e},
	})
}

// BadRequest writes a 400 error document.
func BadRequest(w http.ResponseWriter, r *http.Request, detail, parameter string) {
	Fail(w, r, http.StatusBadRequest, detail, parameter)
}

// Forbidden writes a 403 error document.
func Forbidden(w http.ResponseWriter, r *http.Request, detail, parameter string) {
	Fail(w, r, http.StatusForbidden, detail, parameter)
}

// NotFound writes a 404 error document.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	Fail(w, r, http.StatusNotFound, detail, "")
}

// MethodNotAllowed writes a 405 error document.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusMethodNotAllowed, "Method "+r.Method+" is not supported for this endpoint", "")
}

// RateLimited writes a 429 error document.
func RateLimited(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.", "")
}

// NotImplemented writes a 501 error document.
func NotImplemented(w http.ResponseWriter, r *http.Request, detail string) {
	Fail(w, r, http.StatusNotImplemented, detail, "")
}

// InternalError writes a 500 error document. The cause is logged, not exposed.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && r != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Request failed")
	}
	Fail(w, r, http.StatusInternalServerError, "An unexpected error occurred", "")
}

// ServiceUnavailable writes a 503 error document.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	Fail(w, r, http.StatusServiceUnavailable, detail, "")
}

// ErrorFromType maps typed errors to the matching error document.
func ErrorFromType(w http.ResponseWriter, r *http.Request, err error) {
	var verr *errors.ValidationError
	var ferr *errors.ForbiddenError
	switch {
	case errors.As(err, &verr):
		BadRequest(w, r, verr.Error(), verr.Field)
	case errors.As(err, &ferr):
		Forbidden(w, r, ferr.Error(), "")
	case errors.IsNotFound(err):
		NotFound(w, r, err.Error())
	case errors.IsNotImplemented(err):
		NotImplemented(w, r, err.Error())
	default:
		InternalError(w, r, err)
	}
}
