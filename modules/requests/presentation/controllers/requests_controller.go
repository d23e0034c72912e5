package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coremiddleware "github.com/iota-uz/campus-sdk/modules/core/presentation/middleware"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/presentation/viewmodels"
	"github.com/iota-uz/campus-sdk/modules/requests/services"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/httpapi"
)

type RequestsController struct {
	app            application.Application
	requestService *services.RequestService
	commentService *services.CommentService
	basePath       string
}

func NewRequestsController(app application.Application) application.Controller {
	return &RequestsController{
		app:            app,
		requestService: app.Service(&services.RequestService{}).(*services.RequestService),
		commentService: app.Service(&services.CommentService{}).(*services.CommentService),
		basePath:       "/requests/api/requests",
	}
}

func (c *RequestsController) Key() string {
	return c.basePath
}

func (c *RequestsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(coremiddleware.RequireAuth())
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("/my", c.listOwn).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/status", c.updateStatus).Methods(http.MethodPut)
	router.HandleFunc("/{id}/assign", c.reassign).Methods(http.MethodPut)
	router.HandleFunc("/{id}/comments", c.postComment).Methods(http.MethodPost)
	router.HandleFunc("/{id}/comments", c.listComments).Methods(http.MethodGet)
	router.HandleFunc("/{id}/comments/read", c.markCommentsRead).Methods(http.MethodPost)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, request.ErrNotFound
	}
	return id, nil
}

func pagination(r *http.Request) (int, int) {
	conf := configuration.Use()
	q := r.URL.Query()
	limit := conf.PageSize
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= conf.MaxPageSize {
			limit = n
		}
	}
	offset := 0
	if raw := q.Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

type createRequestBody struct {
	RequestType        string `json:"request_type"`
	Subject            string `json:"subject"`
	Description        string `json:"description"`
	AssignedReviewerID string `json:"assigned_reviewer_id"`
	AttachmentID       string `json:"attachment_id"`
}

func (c *RequestsController) create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	dto := &request.CreateDTO{
		RequestType: body.RequestType,
		Subject:     body.Subject,
		Description: body.Description,
	}
	// Unparseable hints are treated like absent ones.
	if id, err := uuid.Parse(body.AssignedReviewerID); err == nil {
		dto.AssignedReviewerID = id
	}
	if id, err := uuid.Parse(body.AttachmentID); err == nil {
		dto.AttachmentID = id
	}
	if errs, ok := dto.Ok(); !ok {
		httpapi.WriteError(w, r, errs)
		return
	}
	created, err := c.requestService.Create(r.Context(), dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusCreated, viewmodels.RequestFromEntity(created))
}

func (c *RequestsController) list(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()
	params := &request.FindParams{
		Department: q.Get("department"),
		Limit:      limit,
		Offset:     offset,
	}
	if status, err := request.ParseStatus(q.Get("status")); err == nil {
		params.Status = status
	}
	if id, err := uuid.Parse(q.Get("reviewer_id")); err == nil {
		params.AssignedReviewerID = id
	}
	entities, err := c.requestService.List(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	total, err := c.requestService.Count(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"requests": viewmodels.RequestsFromEntities(entities),
		"total":    total,
	})
}

func (c *RequestsController) listOwn(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	entities, err := c.requestService.ListOwn(r.Context(), limit, offset)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"requests": viewmodels.RequestsFromEntities(entities),
	})
}

func (c *RequestsController) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.requestService.GetByID(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, viewmodels.RequestFromEntity(entity))
}

type updateStatusBody struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

func (c *RequestsController) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	var body updateStatusBody
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	updated, err := c.requestService.UpdateStatus(r.Context(), id, body.Status, body.Feedback)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, viewmodels.RequestFromEntity(updated))
}

type reassignBody struct {
	ReviewerID string `json:"reviewer_id"`
}

func (c *RequestsController) reassign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	var body reassignBody
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	reviewerID, err := uuid.Parse(body.ReviewerID)
	if err != nil {
		httpapi.WriteError(w, r, httpapi.ErrMalformedBody)
		return
	}
	updated, err := c.requestService.Reassign(r.Context(), id, reviewerID)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, viewmodels.RequestFromEntity(updated))
}

type postCommentBody struct {
	Content string `json:"content"`
}

func (c *RequestsController) postComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	var body postCommentBody
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	created, err := c.commentService.Post(r.Context(), id, body.Content)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusCreated, viewmodels.CommentFromEntity(created))
}

func (c *RequestsController) listComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entities, err := c.commentService.List(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"comments": viewmodels.CommentsFromEntities(entities),
	})
}

func (c *RequestsController) markCommentsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	count, err := c.commentService.MarkRead(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"marked": count,
	})
}
