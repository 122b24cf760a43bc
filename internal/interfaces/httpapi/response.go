package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "team-management-app"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain    string `json:"domain"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	OpenSlots int    `json:"openSlots,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is checked in order; the first matching target wins, so the
// precise lineup errors come before the usecase sentinels that wrap them.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{
		targets: []error{lineup.ErrIncompleteLineup},
		mapped:  mappedError{HTTPStatus: http.StatusBadRequest, Reason: "incompleteLineup", Status: "FAILED_PRECONDITION"},
	},
	{
		targets: []error{lineup.ErrUnknownSystem, lineup.ErrInsufficientPlayers, lineup.ErrSystemMismatch},
		mapped:  mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidFormation", Status: "INVALID_ARGUMENT"},
	},
	{
		targets: []error{usecase.ErrInvalidInput},
		mapped:  mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		targets: []error{usecase.ErrNotFound},
		mapped:  mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		targets: []error{usecase.ErrPersistence},
		mapped:  mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "storageUnavailable", Status: "UNAVAILABLE"},
	},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError renders err with the status its sentinel maps to. Messages of
// unmapped errors are not exposed.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	if mapped == internalError {
		writeInternalError(ctx, w)
		return
	}

	item := googleErrorItem{Domain: errorDomain, Reason: mapped.Reason, Message: err.Error()}
	var incomplete *lineup.IncompleteError
	if errors.As(err, &incomplete) {
		item.OpenSlots = incomplete.Open
	}
	writeErrorBody(ctx, w, mapped, err.Error(), item)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"
	writeErrorBody(ctx, w, internalError, msg, googleErrorItem{Domain: errorDomain, Reason: internalError.Reason, Message: msg})
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, msg string, item googleErrorItem) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{item},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}
