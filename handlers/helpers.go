package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/schedule"
	"github.com/Dosada05/tournament-scheduler/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type jsonResponse map[string]interface{}

const maxBodyBytes = 1_048_576 // 1MB

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// readBody читает сырое тело запроса для данных, которые декодируются
// в другом месте (schedule.DecodeRecords).
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("body must not be empty")
	}
	return data, nil
}

func decodeError(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return fmt.Errorf("body contains unknown key %s", fieldName)
	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
	case errors.As(err, &invalidUnmarshalError):
		panic(err) // передан не указатель
	default:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func logRequestError(r *http.Request, msg string, err error) {
	slog.Default().ErrorContext(r.Context(), msg,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.Any("error", err),
	)
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		logRequestError(r, "error writing error response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logRequestError(r, "internal server error", err)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, messages []string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, jsonResponse{
		"message": services.ErrValidationFailed.Error(),
		"errors":  messages,
	})
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "the requested resource could not be found"
	}
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *services.ValidationError
	var apiErr *apiclient.APIError

	switch {
	case errors.As(err, &vErr):
		failedValidationResponse(w, r, vErr.Messages)

	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrConfigurationNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrMatchEventNotFound),
		errors.Is(err, services.ErrSnapshotNotFound):
		notFoundResponse(w, r, err.Error())

	case errors.Is(err, services.ErrOperationInProgress):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrInvalidGroupCount),
		errors.Is(err, services.ErrInvalidMatchEvent),
		errors.Is(err, services.ErrNothingToUpdate),
		errors.Is(err, services.ErrInvalidFixtureType),
		errors.Is(err, brackets.ErrInvalidGroupCount),
		errors.Is(err, brackets.ErrGroupLabelOutOfRange),
		errors.Is(err, schedule.ErrInvalidScheduledDate),
		errors.Is(err, schedule.ErrUnrecognisedPayload):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrArchiveDisabled):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	// Ошибки удалённого API
	case errors.Is(err, services.ErrInvalidFixtureResponse):
		errorResponse(w, r, http.StatusBadGateway, err.Error())
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			notFoundResponse(w, r, apiErr.Message)
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			errorResponse(w, r, apiErr.StatusCode, apiErr.Message)
		default:
			logRequestError(r, "tournament api failure", err)
			errorResponse(w, r, http.StatusBadGateway, apiErr.Message)
		}

	default:
		serverErrorResponse(w, r, err)
	}
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", paramName, id)
	}
	return id, nil
}

// queryInt читает необязательный целый параметр запроса.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s query parameter: %q", name, raw)
	}
	return &v, nil
}
