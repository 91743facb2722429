package validation

import (
	"errors"
	"fmt"
	"github.com/skybi/schools-server/internal/api/schema"
	"math"
	"net/http"
	"strconv"
	"strings"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return schema.NewError(schema.KindInvalidFieldType, fmt.Sprintf("%s query parameter is required", name))
	}
	errQueryParameterInvalidType = func(name string) *schema.Error {
		return schema.NewError(schema.KindInvalidFieldType, fmt.Sprintf("%s query parameter must be a number", name))
	}
	errQueryParameterNumberOutOfRange = func(name string, min, max int64) *schema.Error {
		if max == math.MaxInt64 {
			return schema.NewError(schema.KindInvalidRange, fmt.Sprintf("%s query parameter must be at least %d", name, min))
		}
		return schema.NewError(schema.KindInvalidRange, fmt.Sprintf("%s query parameter must be at least %d and no greater than %d", name, min, max))
	}
)

// QueryNumber extracts and validates an integer value out of the query parameters of the given request.
// Use math.MaxInt64 as max to only enforce a lower bound.
func QueryNumber(request *http.Request, key string, required bool, def, min, max int64) (int64, *schema.Error) {
	// Extract the raw string value; a present but empty parameter is not a number
	query := request.URL.Query()
	if !query.Has(key) {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}
	value := query.Get(key)

	// Try to parse the value
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// Syntactically valid numbers that do not fit into 64 bits violate any range but the unbounded one
		if errors.Is(err, strconv.ErrRange) && (strings.HasPrefix(value, "-") || max < math.MaxInt64) {
			return 0, errQueryParameterNumberOutOfRange(key, min, max)
		}
		return 0, errQueryParameterInvalidType(key)
	}

	// Check if the parsed value is in the required range
	if parsed < min || parsed > max {
		return 0, errQueryParameterNumberOutOfRange(key, min, max)
	}

	return parsed, nil
}
