package schema

import (
	"encoding/json"
	"net/http"
)

// Writer helps writing unified API responses
type Writer struct {
	InternalErrorHook func(request *http.Request, err error)
}

// WriteJSONCode writes the JSON representation of value to the given response writer using the given HTTP status code
func (writer *Writer) WriteJSONCode(rw http.ResponseWriter, code int, value interface{}) {
	val, err := json.Marshal(value)
	if err != nil {
		writer.WriteInternalError(rw, nil, err)
		return
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(code)
	rw.Write(val)
}

// WriteJSON writes the JSON representation of value to the given response writer.
// This method sends 200 OK as the HTTP status code; use WriteJSONCode to use a different one.
func (writer *Writer) WriteJSON(rw http.ResponseWriter, value interface{}) {
	writer.WriteJSONCode(rw, http.StatusOK, value)
}

// WriteError sends an error response using the status code derived from the error's kind
func (writer *Writer) WriteError(rw http.ResponseWriter, err *Error) {
	writer.WriteJSONCode(rw, err.Status(), err)
}

// WriteInternalError processes an internal server error and writes it to the response.
// request may be nil if the error is not bound to a specific request.
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, request *http.Request, err error) {
	if writer.InternalErrorHook != nil {
		writer.InternalErrorHook(request, err)
	}
	writer.WriteError(rw, ErrInternal)
}
