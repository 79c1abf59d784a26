// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/automa-saga/automa"
	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/sciportal/portal-datastore/internal/datastore"
	"github.com/sciportal/portal-datastore/internal/workflows"
)

const helloMessage = "Hello from portal-datastore."

// handler exposes the provisioning operations over HTTP, one route per
// operation. It owns no state; every request is resolved against the
// backend through the components it wraps.
type handler struct {
	provisioner *datastore.Provisioner
	access      *datastore.AccessController
	logger      zerolog.Logger
}

func newRouter(h *handler, mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, m := range mw {
		r.Use(m)
	}

	r.Get("/", h.handleHello)

	r.Route("/path", func(r chi.Router) {
		r.Get("/exists", h.handlePathExists)
		r.Get("/permissions", h.handlePathPermissions)
		r.Post("/chmod", h.handleChmod)
	})

	r.Get("/permissions/available", h.handleAvailablePermissions)

	r.Route("/users/{username}", func(r chi.Router) {
		r.Post("/", h.handleCreateUser)
		r.Delete("/", h.handleDeleteUser)
		r.Get("/exists", h.handleUserExists)
		r.Get("/home", h.handleGetHome)
		r.Delete("/home", h.handleDeleteHome)
		r.Post("/password", h.handleChangePassword)
	})

	r.Post("/services/register", h.handleServiceRegistration)

	return r
}

func (h *handler) handleHello(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, helloMessage)
}

func (h *handler) handlePathExists(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		h.respondError(w, r, datastore.ValidationError.New("path query parameter is not set"))
		return
	}

	exists, err := h.access.PathExists(r.Context(), path)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"path":   path,
		"exists": exists,
	})
}

func (h *handler) handlePathPermissions(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		h.respondError(w, r, datastore.ValidationError.New("path query parameter is not set"))
		return
	}

	perms, err := h.access.GetPermissions(r.Context(), path)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"permissions": perms,
	})
}

func (h *handler) handleAvailablePermissions(w http.ResponseWriter, r *http.Request) {
	vocab, err := h.access.AvailablePermissions(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	names := make([]string, 0, len(vocab))
	for name := range vocab {
		names = append(names, name)
	}
	sort.Strings(names)

	respond(w, http.StatusOK, map[string]interface{}{
		"permissions": names,
	})
}

// chmodRequest is a single grant request. All three fields are required;
// an inherit/default grant is expressed through the registration workflow,
// not through this endpoint.
type chmodRequest struct {
	Username   string `json:"username"`
	Path       string `json:"path"`
	Permission string `json:"permission"`
}

// handleChmod validates the grant before any backend mutation: the user
// must exist, the permission name must be in the live vocabulary, and the
// path must resolve. Only then is the grant forwarded.
func (h *handler) handleChmod(w http.ResponseWriter, r *http.Request) {
	var req chmodRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	switch {
	case req.Username == "":
		h.respondError(w, r, datastore.ValidationError.New("username must be set in request body"))
		return
	case req.Path == "":
		h.respondError(w, r, datastore.ValidationError.New("path must be set in request body"))
		return
	case req.Permission == "":
		h.respondError(w, r, datastore.ValidationError.New("permission must be set in request body"))
		return
	}

	ctx := r.Context()

	exists, err := h.provisioner.UserExists(ctx, req.Username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !exists {
		h.respondError(w, r, datastore.NewUserNotFoundError(req.Username))
		return
	}

	vocab, err := h.access.AvailablePermissions(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if _, ok := vocab[req.Permission]; !ok {
		h.respondError(w, r, datastore.NewUnknownPermissionError(req.Permission))
		return
	}

	pathOK, err := h.access.PathExists(ctx, req.Path)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !pathOK {
		h.respondError(w, r, datastore.NewPathNotFoundError(req.Path))
		return
	}

	if err := h.access.Chmod(ctx, req.Username, req.Permission, req.Path); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, req)
}

func (h *handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	exists, err := h.provisioner.UserExists(r.Context(), username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if exists {
		h.respondError(w, r, datastore.NewUserConflictError(username))
		return
	}

	user, err := h.provisioner.CreateUser(r.Context(), username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, user)
}

func (h *handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.provisioner.DeleteUser(r.Context(), username); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"user": username,
	})
}

func (h *handler) handleUserExists(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	exists, err := h.provisioner.UserExists(r.Context(), username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"user":   username,
		"exists": exists,
	})
}

func (h *handler) handleGetHome(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	respond(w, http.StatusOK, map[string]interface{}{
		"user": username,
		"home": h.provisioner.HomePath(username),
	})
}

func (h *handler) handleDeleteHome(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.provisioner.DeleteHome(r.Context(), username); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"user": username,
		"home": h.provisioner.HomePath(username),
	})
}

type passwordChangeRequest struct {
	Password string `json:"password"`
}

func (h *handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req passwordChangeRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.provisioner.SetPassword(r.Context(), username, req.Password); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"user": username,
	})
}

// serviceRegistrationRequest carries the registration workflow input. The
// field names are part of the wire contract with existing portal clients.
type serviceRegistrationRequest struct {
	Username      string `json:"username"`
	Path          string `json:"irods_path"`
	SecondaryUser string `json:"irods_user"`
}

func (h *handler) handleServiceRegistration(w http.ResponseWriter, r *http.Request) {
	var req serviceRegistrationRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	switch {
	case req.Username == "":
		h.respondError(w, r, datastore.ValidationError.New("username must not be empty"))
		return
	case req.Path == "":
		h.respondError(w, r, datastore.ValidationError.New("irods_path must not be empty"))
		return
	}

	svc := workflows.Services{Provisioner: h.provisioner, Access: h.access}

	reg, report, err := workflows.Register(r.Context(), svc, req.Username, req.Path, req.SecondaryUser)
	if report != nil {
		h.logRegistrationReport(req.Username, report)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, reg)
}

// logRegistrationReport records which workflow steps ran and how they
// ended. Since nothing is rolled back, this is the operator's record of
// partial state after a mid-workflow failure.
func (h *handler) logRegistrationReport(username string, report *automa.Report) {
	event := h.logger.Info()
	if report.Status == automa.StatusFailed {
		event = h.logger.Error()
	}

	for _, stepReport := range report.StepReports {
		event = event.Str(stepReport.Id, string(stepReport.Status))
	}

	event.Str("username", username).Msg("Service registration workflow finished")
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return datastore.ValidationError.Wrap(err, "malformed request body")
	}
	return nil
}
