// Package handler contains the HTTP layer: request decoding, response
// shaping, and the mapping from domain errors to status codes. Everything
// else is delegated to the service layer.
package handler

import (
	"net/http"

	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/service"
)

// UserHandler serves /v1/users. Handlers do not log; failures are logged by
// the service layer and the request middleware.
type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// HandleList responds to GET /v1/users?limit=&offset= with the pagination
// envelope {page, count, items}.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := listParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// HandleGetByID responds to GET /v1/users/{id}. Absence is a 404; a storage
// failure is a 500; the two are never conflated.
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleCreate responds to POST /v1/users with the created record, echoing
// the server-assigned id, defaulted role, and timestamps.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleUpdate responds to PUT /v1/users/{id} with the merged record.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UserUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleDelete responds to DELETE /v1/users/{id}. The delete is
// unconditional, with no prior existence check, and always returns 204.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
