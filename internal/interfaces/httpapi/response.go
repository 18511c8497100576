package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-elo/external/openfootball"
	"github.com/riskibarqy/league-elo/internal/platform/export"
	"github.com/riskibarqy/league-elo/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	apiVersion  = "2.0"
	errorDomain = "league-elo"
)

// envelope follows the Google JSON style guide: data on success, error
// otherwise.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	HTTPStatus int
	Reason     string
	Status     string
	match      func(error) bool
}

var internalClass = errorClass{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

// errorClasses is checked in order. Assertion failures come first so a
// broken invariant is never reported as a client error.
var errorClasses = []errorClass{
	{
		HTTPStatus: http.StatusInternalServerError,
		Reason:     "internalError",
		Status:     "INTERNAL",
		match:      crerr.IsAssertionFailure,
	},
	{
		HTTPStatus: http.StatusBadRequest,
		Reason:     "malformedSeason",
		Status:     "INVALID_ARGUMENT",
		match:      isAny(openfootball.ErrMalformedLine),
	},
	{
		HTTPStatus: http.StatusBadRequest,
		Reason:     "invalidInput",
		Status:     "INVALID_ARGUMENT",
		match:      isAny(usecase.ErrInvalidInput, export.ErrUnknownFormat),
	},
	{
		HTTPStatus: http.StatusNotFound,
		Reason:     "notFound",
		Status:     "NOT_FOUND",
		match:      isAny(usecase.ErrNotFound),
	},
	{
		HTTPStatus: http.StatusServiceUnavailable,
		Reason:     "dependencyUnavailable",
		Status:     "UNAVAILABLE",
		match:      isAny(usecase.ErrDependencyUnavailable),
	},
}

func isAny(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

func mapError(ctx context.Context, err error) errorClass {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, class := range errorClasses {
		if class.match(err) {
			return class
		}
	}
	return internalClass
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeRows answers with the JSON envelope or, for other formats, the
// serialized rows as the whole body.
func writeRows[T export.Record](ctx context.Context, w http.ResponseWriter, format export.Format, rows []T) {
	if format == export.FormatJSON {
		if rows == nil {
			rows = []T{}
		}
		writeSuccess(ctx, w, http.StatusOK, rows)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := export.Write(buf, format, rows); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

// writeError hides the message of every 500 behind a fixed text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := mapError(ctx, err)
	if class.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeProblem(ctx, w, class, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeProblem(ctx, w, internalClass, "internal server error")
}

func writeProblem(ctx context.Context, w http.ResponseWriter, class errorClass, msg string) {
	writeJSON(ctx, w, class.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: msg,
			Status:  class.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: msg}},
		},
	})
}
