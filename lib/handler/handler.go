// Package handler adapts error-returning HTTP handlers to net/http and maps
// returned errors to a JSON {"detail": message} body with a status code.
package handler

import (
	"encoding/json"
	"net/http"
)

// Error is an error that carries an HTTP status code.
type Error interface {
	error
	Status() int
}

// StatusError pairs an error with the HTTP status it should produce.
type StatusError struct {
	Code int
	Err  error
}

func (se StatusError) Error() string {
	return se.Err.Error()
}

func (se StatusError) Status() int {
	return se.Code
}

// Handler carries an environment through to an error-returning handler func.
type Handler struct {
	Env interface{}
	H   func(e interface{}, w http.ResponseWriter, r *http.Request) error
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.H(h.Env, w, r)
	if err == nil {
		return
	}
	switch e := err.(type) {
	case Error:
		writeDetail(w, e.Status(), e.Error())
	default:
		// Any unclassified error is an internal error with the raw message.
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func writeDetail(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
