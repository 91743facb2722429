package api

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/skybi/schools-server/internal/api/schema"
	"github.com/skybi/schools-server/internal/api/validation"
	"github.com/skybi/schools-server/internal/school"
	"net/http"
	"strconv"
)

const (
	schoolsPath = "/schools"

	limitDefault  = 100
	limitMin      = 1
	limitMax      = 100
	offsetDefault = 0
	offsetMin     = 0
)

var (
	errSchoolNotFound = func(id uint64) *schema.Error {
		return schema.NewError(schema.KindNotFound, fmt.Sprintf("School with id %d not found", id))
	}
	errSchoolIDMismatch = func(bodyID, pathID uint64) *schema.Error {
		return schema.NewError(schema.KindInvalidIdentifier, fmt.Sprintf("school id in body (%d) does not match school id in path (%d)", bodyID, pathID))
	}
)

type schoolsCollection struct {
	Schools []*school.School           `json:"schools"`
	Meta    *schema.CollectionMetadata `json:"meta"`
	Links   *schema.CollectionLinks    `json:"links"`
}

// EndpointGetSchools handles the 'GET /schools?offset={number?:0}&limit={number?:100}' endpoint
func (service *Service) EndpointGetSchools(writer http.ResponseWriter, request *http.Request) {
	limit, validationErr := validation.QueryNumber(request, "limit", false, limitDefault, limitMin, limitMax)
	if validationErr != nil {
		service.writer.WriteError(writer, validationErr)
		return
	}

	offset, validationErr := validation.QueryNumber(request, "offset", false, offsetDefault, offsetMin, schema.MaxOffset)
	if validationErr != nil {
		service.writer.WriteError(writer, validationErr)
		return
	}

	schools, n, err := service.Storage.Schools().List(request.Context(), uint64(offset), uint64(limit))
	if err != nil {
		service.writer.WriteInternalError(writer, request, err)
		return
	}

	pagination := schema.Pagination{
		Offset: uint64(offset),
		Limit:  uint64(limit),
		Total:  n,
	}
	service.writer.WriteJSON(writer, &schoolsCollection{
		Schools: schools,
		Meta:    pagination.Metadata(),
		Links:   pagination.Links(service.resourceURL(request, schoolsPath)),
	})
}

// EndpointGetSchool handles the 'GET /schools/{id}' endpoint
func (service *Service) EndpointGetSchool(writer http.ResponseWriter, request *http.Request) {
	id, validationErr := validation.PathID(request, "id", "school")
	if validationErr != nil {
		service.writer.WriteError(writer, validationErr)
		return
	}

	obj, err := service.Storage.Schools().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, request, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, errSchoolNotFound(id))
		return
	}

	service.writer.WriteJSON(writer, obj)
}

type endpointAddSchoolRequestPayload struct {
	Name *string `json:"name" required:"true" nonempty:"true"`
}

// EndpointAddSchool handles the 'POST /schools' endpoint
func (service *Service) EndpointAddSchool(writer http.ResponseWriter, request *http.Request) {
	payload, validationErr, err := validation.UnmarshalBody[endpointAddSchoolRequestPayload](writer, request)
	if err != nil {
		service.writer.WriteInternalError(writer, request, err)
		return
	}
	if validationErr != nil {
		service.writer.WriteError(writer, validationErr)
		return
	}

	obj, err := service.Storage.Schools().Create(request.Context(), *payload.Name)
	if err != nil {
		service.writer.WriteInternalError(writer, request, err)
		return
	}
	zerolog.Ctx(request.Context()).Debug().Uint64("school_id", obj.ID).Msg("created school")

	location := service.resourceURL(request, schoolsPath+"/"+strconv.FormatUint(obj.ID, 10))
	writer.Header().Set("Location", location.String())
	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

type endpointUpdateSchoolRequestPayload struct {
	ID   *uint64 `json:"id"`
	Name *string `json:"name" required:"true" nonempty:"true"`
}

// EndpointUpdateSchool handles the 'PUT /schools/{id}' endpoint
func (service *Service) EndpointUpdateSchool(writer http.ResponseWriter, request *http.Request) {
	id, validationErr := validation.PathID(request, "id", "school")
	if validationErr != nil {
		service.writer.WriteError(writer, validationErr)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErr, err := validation.UnmarshalBody[endpointUpdateSchoolRequestPayload](writer, request)
	if err != nil {
		service.writer.WriteInternalError(writer, request, err)
		return
	}
	if validationErr != nil {
		service.writer.WriteError(writer, validationErr)
		return
	}
	if payload.ID != nil && *payload.ID != id {
		service.writer.WriteError(writer, errSchoolIDMismatch(*payload.ID, id))
		return
	}

	// Update the school and return the new one
	obj, err := service.Storage.Schools().Update(request.Context(), id, *payload.Name)
	if err != nil {
		service.writer.WriteInternalError(writer, request, err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, errSchoolNotFound(id))
		return
	}
	zerolog.Ctx(request.Context()).Debug().Uint64("school_id", obj.ID).Msg("updated school")

	service.writer.WriteJSON(writer, obj)
}
