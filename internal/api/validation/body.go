package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/skybi/schools-server/internal/api/schema"
	"io"
	"net/http"
	"reflect"
	"strings"
)

// MaxBodySize is the largest request body in bytes UnmarshalBody accepts
const MaxBodySize = 64 << 10

var (
	errRequestBodyTooLarge    = schema.NewError(schema.KindBodyTooLarge, fmt.Sprintf("request body must not be larger than %d bytes", MaxBodySize))
	errRequestBodyInvalidJSON = schema.NewError(schema.KindMalformedBody, "request body must be a valid JSON object")

	errRequestBodyFieldInvalidType = func(name, expectedType string) *schema.Error {
		return schema.NewError(schema.KindInvalidFieldType, fmt.Sprintf("Field %q must be a %s", name, expectedType))
	}
	errRequestBodyFieldEmpty = func(name string) *schema.Error {
		return schema.NewError(schema.KindInvalidFieldType, fmt.Sprintf("Field %q must not be empty", name))
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
// Fields of the target type are validated using the following struct tags:
//   - required:"true" rejects missing and null values (the field has to be a pointer)
//   - nonempty:"true" rejects empty strings
//
// Bodies larger than MaxBodySize are rejected.
// The first validation error is returned; the error return value is reserved for failures to read the body.
func UnmarshalBody[T any](writer http.ResponseWriter, request *http.Request) (*T, *schema.Error, error) {
	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, MaxBodySize))
	if err != nil {
		// The limited reader fails right after handing out exactly MaxBodySize bytes
		if len(body) == MaxBodySize {
			return nil, errRequestBodyTooLarge, nil
		}
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, errRequestBodyFieldInvalidType(typeErr.Field, describeType(typeErr.Type)), nil
		}
		return nil, errRequestBodyInvalidJSON, nil
	}

	validationErr, err := validateStruct(target)
	if err != nil {
		return nil, nil, err
	}
	if validationErr != nil {
		return nil, validationErr, nil
	}
	return target, nil, nil
}

func validateStruct(val any) (*schema.Error, error) {
	ref := reflect.ValueOf(val)
	if ref.Kind() == reflect.Pointer {
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateStruct with non-struct parameter")
	}
	typ := ref.Type()

	for i := 0; i < typ.NumField(); i++ {
		// Retrieve the validation requirements
		fieldDef := typ.Field(i)
		required := strings.EqualFold(fieldDef.Tag.Get("required"), "true")
		nonEmpty := strings.EqualFold(fieldDef.Tag.Get("nonempty"), "true")
		fieldName := getFieldName(fieldDef)

		// Perform all validations on the field
		field := ref.Field(i)
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if required {
					return errRequestBodyFieldInvalidType(fieldName, describeType(fieldDef.Type)), nil
				}
				continue
			}
			field = field.Elem()
		}
		if nonEmpty && field.Kind() == reflect.String && field.Len() == 0 {
			return errRequestBodyFieldEmpty(fieldName), nil
		}
	}

	return nil, nil
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}

// describeType names a Go type the way it is represented in JSON
func describeType(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	switch typ.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
