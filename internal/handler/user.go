package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/repository"
	"github.com/aminah/showtrack/internal/service"
)

// UserHandler exposes user profiles and their two show lists.
type UserHandler struct {
	auth  *service.AuthService
	lists *service.ListService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(auth *service.AuthService, lists *service.ListService) *UserHandler {
	return &UserHandler{auth: auth, lists: lists}
}

// Get handles GET /api/users/{id}. The response carries both list id sets;
// resolving them to full shows is the /shows sub-resource's job.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users — explicit registration without a
// provider. Email and password are optional.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperror.Invalid("body", "request body is not valid JSON"))
		return
	}

	user, err := h.auth.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// AddToList handles POST /api/users/{id}/{list} with {"showId": "..."}.
// Adding to one list moves the show off the other; the response is the
// refreshed user so the client can patch both lists from one payload.
func (h *UserHandler) AddToList(w http.ResponseWriter, r *http.Request) {
	list, err := listParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		ShowID string `json:"showId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperror.Invalid("body", "request body is not valid JSON"))
		return
	}

	user, err := h.lists.Add(r.Context(), chi.URLParam(r, "id"), list, body.ShowID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// RemoveFromList handles DELETE /api/users/{id}/{list}/{showId}.
// Removing a show that is not on the list succeeds — DELETE is idempotent.
func (h *UserHandler) RemoveFromList(w http.ResponseWriter, r *http.Request) {
	list, err := listParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.lists.Remove(r.Context(), chi.URLParam(r, "id"), list, chi.URLParam(r, "showId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ListShows handles GET /api/users/{id}/shows?list=watchlist|watched,
// resolving the chosen list to full show records in the order they were
// added. Ids pointing at deleted shows are skipped.
func (h *UserHandler) ListShows(w http.ResponseWriter, r *http.Request) {
	list := repository.ListName(r.URL.Query().Get("list"))

	shows, err := h.lists.ShowsIn(r.Context(), chi.URLParam(r, "id"), list)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shows)
}

// listParam reads the {list} route segment. The route pattern constrains it
// already; the check here keeps the handler safe under route refactors.
func listParam(r *http.Request) (repository.ListName, error) {
	list := repository.ListName(chi.URLParam(r, "list"))
	if !list.Valid() {
		return "", apperror.Invalid("list", "list must be \"watchlist\" or \"watched\"")
	}
	return list, nil
}
