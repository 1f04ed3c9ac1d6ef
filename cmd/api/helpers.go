// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"github.com/carloabimanyu/bookshelf-api/internal/data"
)

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// envelope is the top-level JSON wrapper type used for all API responses.
// Every response body carries a "status" key of "success" or "fail", e.g.
// {"status": "success", "data": {"book": {...}}}.
type envelope map[string]any

// success builds a "success" envelope. Empty message or nil data are left out.
func success(message string, data envelope) envelope {
	env := envelope{"status": "success"}
	if message != "" {
		env["message"] = message
	}
	if data != nil {
		env["data"] = data
	}
	return env
}

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Ids are opaque strings; an unknown id is reported by the store, not here.
func (app *applicationDependencies) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

// readOptionalString returns a pointer to the value of key, or nil when the
// key is absent from qs. A present but empty value yields a pointer to "".
func (app *applicationDependencies) readOptionalString(qs url.Values, key string) *string {
	if !qs.Has(key) {
		return nil
	}
	s := qs.Get(key)
	return &s
}

// readOptionalFlag reads a "1"/"0" style flag: "1" is true, any other
// supplied value is false, and nil means the key was absent.
func (app *applicationDependencies) readOptionalFlag(qs url.Values, key string) *bool {
	if !qs.Has(key) {
		return nil
	}
	b := qs.Get(key) == "1"
	return &b
}

// readFilters collects the list filters from the query string.
func (app *applicationDependencies) readFilters(qs url.Values) data.Filters {
	return data.Filters{
		Name:     app.readOptionalString(qs, "name"),
		Reading:  app.readOptionalFlag(qs, "reading"),
		Finished: app.readOptionalFlag(qs, "finished"),
	}
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
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
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit and ensures the body contains exactly one
// JSON value (no trailing data). Keys dst does not declare are ignored.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.As(err, &typeError):
			if typeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", typeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", typeError.Offset)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
