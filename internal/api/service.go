package api

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/schools-server/internal/api/schema"
	"github.com/skybi/schools-server/internal/config"
	"github.com/skybi/schools-server/internal/storage"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Service represents the schools API service
type Service struct {
	server *http.Server

	Config  *config.Config
	Storage storage.Driver

	baseURL *url.URL
	writer  *schema.Writer
}

// Handler builds the HTTP handler serving the schools API
func (service *Service) Handler() (http.Handler, error) {
	baseURL, err := service.Config.ParsePublicBaseURL()
	if err != nil {
		return nil, err
	}
	service.baseURL = baseURL

	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(request *http.Request, err error) {
			logger := &log.Logger
			if request != nil {
				logger = zerolog.Ctx(request.Context())
			}
			logger.Error().Err(err).Msg("the schools API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(service.middlewareRequestID)
	router.Use(service.middlewareLogRequests)
	router.Use(service.middlewareRedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: service.Config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Location", headerRequestID},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteError(writer, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteError(writer, schema.ErrMethodNotAllowed)
	})

	// Register the API endpoint handlers
	service.registerEndpoints(router)

	return router, nil
}

// Startup starts up the schools API in the background.
// Unexpected errors raised while serving are sent to errs.
func (service *Service) Startup(errs chan<- error) error {
	handler, err := service.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              service.Config.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the schools API
func (service *Service) Shutdown() {
	if service.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := service.server.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("could not gracefully shut down the schools API")
		service.server.Close()
	}
	service.server = nil
}

func (service *Service) registerEndpoints(router chi.Router) {
	// Register the school controller endpoints
	router.Get(schoolsPath, service.EndpointGetSchools)
	router.Post(schoolsPath, service.EndpointAddSchool)
	router.Get(schoolsPath+"/{id}", service.EndpointGetSchool)
	router.Put(schoolsPath+"/{id}", service.EndpointUpdateSchool)

	// Register the static API documentation
	if service.Config.DocsDir != "" {
		service.registerDocs(router, service.Config.DocsDir)
	}
}

// resourceURL builds the absolute URL of the resource at the given path.
// The configured public base URL is preferred over the scheme and host the request was received with.
func (service *Service) resourceURL(request *http.Request, path string) *url.URL {
	if service.baseURL != nil {
		link := *service.baseURL
		link.Path = strings.TrimSuffix(link.Path, "/") + path
		link.RawPath = ""
		link.RawQuery = ""
		return &link
	}

	scheme := "http"
	if request.TLS != nil || strings.EqualFold(request.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return &url.URL{
		Scheme: scheme,
		Host:   request.Host,
		Path:   path,
	}
}
