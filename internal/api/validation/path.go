package validation

import (
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/skybi/schools-server/internal/api/schema"
	"net/http"
	"strconv"
)

var errPathIdentifierInvalid = func(resource string) *schema.Error {
	return schema.NewError(schema.KindInvalidIdentifier, fmt.Sprintf("%s id must be a number", resource))
}

// PathID extracts and validates a non-negative integer identifier out of the URL parameters of the given request.
// resource is used to name the identifier in the error message.
func PathID(request *http.Request, key, resource string) (uint64, *schema.Error) {
	id, err := strconv.ParseUint(chi.URLParam(request, key), 10, 64)
	if err != nil {
		return 0, errPathIdentifierInvalid(resource)
	}
	return id, nil
}
