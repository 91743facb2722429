package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/skybi/schools-server/internal/api/schema"
	"net/http"
	"path"
	"strings"
)

const docsPath = "/docs"

// registerDocs serves the static API documentation inside dir under /docs/.
// Directories are only served if they contain an index.html; listings are never rendered.
func (service *Service) registerDocs(router chi.Router, dir string) {
	files := http.Dir(dir)
	fileServer := http.StripPrefix(docsPath, http.FileServer(files))

	serveFile := func(writer http.ResponseWriter, request *http.Request) {
		name := strings.TrimPrefix(request.URL.Path, docsPath)
		if strings.HasSuffix(name, "/") {
			name = path.Join(name, "index.html")
		}
		file, err := files.Open(name)
		if err != nil {
			service.writer.WriteError(writer, schema.ErrNotFound)
			return
		}
		info, err := file.Stat()
		file.Close()
		if err != nil || info.IsDir() {
			service.writer.WriteError(writer, schema.ErrNotFound)
			return
		}
		fileServer.ServeHTTP(writer, request)
	}
	redirectToIndex := func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, service.resourceURL(request, docsPath+"/").String(), http.StatusMovedPermanently)
	}

	router.Get(docsPath, redirectToIndex)
	router.Head(docsPath, redirectToIndex)
	router.Get(docsPath+"/*", serveFile)
	router.Head(docsPath+"/*", serveFile)
}
