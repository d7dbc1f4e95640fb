// Package respond writes the API's uniform JSON envelope.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the shape of every response body. Count is only present on
// list responses; Error only in development mode.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes the envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes a 200 success envelope carrying data.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope carrying data.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 success envelope with a count alongside the data.
func List(w http.ResponseWriter, data any, count int) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Fail writes a failure envelope. detail is included only when devMode is
// set; production clients see the message alone.
func Fail(w http.ResponseWriter, status int, message, detail string, devMode bool) {
	env := Envelope{Success: false, Message: message}
	if devMode {
		env.Error = detail
	}
	JSON(w, status, env)
}
