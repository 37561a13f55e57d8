package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/catalog"
	"github.com/aminah/showtrack/internal/model"
	"github.com/aminah/showtrack/internal/service"
)

// maxImportSize caps the CSV upload body at 5 MiB. A personal catalog
// export is kilobytes; anything bigger is a mistake or an attack.
const maxImportSize = 5 << 20

// ShowHandler exposes the show catalog over HTTP.
type ShowHandler struct {
	shows *service.ShowService
}

// NewShowHandler creates a ShowHandler.
func NewShowHandler(shows *service.ShowService) *ShowHandler {
	return &ShowHandler{shows: shows}
}

// List handles GET /api/shows.
//
// The display pipeline (sort, then filter) runs server-side from query
// parameters:
//
//	?type=MOVIE&personalRating=4-7&rottenTomatoRating=71-100
//	&platform=NETFLIX&platform=HULU&search=dune&sort=alphabetical
//
// Absent parameters mean "predicate not applied", so a bare GET /api/shows
// returns the whole catalog in stored order.
func (h *ShowHandler) List(w http.ResponseWriter, r *http.Request) {
	shows, err := h.shows.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filter, key := queryToFilter(r.URL.Query())
	writeJSON(w, http.StatusOK, catalog.Evaluate(shows, filter, key))
}

// queryToFilter maps URL query parameters onto the catalog engine's inputs.
// Unknown platform names are dropped rather than rejected — filter state
// lives in shareable URLs and a stale link should degrade, not 400.
func queryToFilter(q url.Values) (catalog.Filter, catalog.SortKey) {
	var platforms []model.Platform
	for _, raw := range q["platform"] {
		if p, err := model.ParsePlatform(strings.TrimSpace(raw)); err == nil {
			platforms = append(platforms, p)
		}
	}

	f := catalog.Filter{
		Type:               strings.TrimSpace(q.Get("type")),
		PersonalRating:     strings.TrimSpace(q.Get("personalRating")),
		RottenTomatoRating: strings.TrimSpace(q.Get("rottenTomatoRating")),
		Platforms:          platforms,
		TitleQuery:         q.Get("search"),
	}
	return f, catalog.SortKey(strings.TrimSpace(q.Get("sort")))
}

// Get handles GET /api/shows/{id}.
func (h *ShowHandler) Get(w http.ResponseWriter, r *http.Request) {
	show, err := h.shows.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

// GetByTitle handles GET /api/shows/title/{title}. Titles are not unique,
// so the response is always an array; no match is a 404.
func (h *ShowHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil {
		writeError(w, apperror.Invalid("title", "title is not valid URL encoding"))
		return
	}

	shows, err := h.shows.GetByTitle(r.Context(), title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shows)
}

// Create handles POST /api/shows.
func (h *ShowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ShowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperror.Invalid("body", "request body is not valid JSON"))
		return
	}

	show, err := h.shows.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, show)
}

// Update handles PUT /api/shows/{id} — a full-field replace.
func (h *ShowHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.ShowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperror.Invalid("body", "request body is not valid JSON"))
		return
	}

	show, err := h.shows.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

// Delete handles DELETE /api/shows/{id}.
func (h *ShowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shows.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /api/shows/import: a multipart upload with the CSV
// under the "file" field. Responds 200 with a per-row result even when some
// rows failed — partial success is the designed outcome, and the client
// shows the failures next to the created count.
func (h *ShowHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperror.Invalid("file", "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	result, err := h.shows.ImportCSV(r.Context(), file)
	if err != nil {
		writeError(w, apperror.Invalid("file", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
