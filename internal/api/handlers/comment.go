package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api/middleware"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	reportService  *service.ReportService
}

func NewCommentHandler(commentService *service.CommentService, reportService *service.ReportService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		reportService:  reportService,
	}
}

type UpdateCommentRequest struct {
	Body    *string `json:"body"`
	IsDraft *bool   `json:"isDraft"`
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "comments found", comments)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid comment id")
		return
	}

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "comment found", comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid comment id")
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), id, service.UpdateCommentInput{
		Body:    req.Body,
		IsDraft: req.IsDraft,
	}, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "comment updated", comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid comment id")
		return
	}

	message, err := h.commentService.DeleteWithMessage(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, message, nil)
}

type CommentReactionsResponse struct {
	Comment   *domain.Comment          `json:"comment"`
	Reactions []*domain.ReactionDetail `json:"reactions"`
}

func (h *CommentHandler) ListReactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid comment id")
		return
	}

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	reactions, err := h.commentService.Reactions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "reactions found", CommentReactionsResponse{Comment: comment, Reactions: reactions})
}

func (h *CommentHandler) React(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid comment id")
		return
	}

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	reactionType := domain.ReactionType(req.Type)
	if !reactionType.Valid() {
		respondBadRequest(w, "type must be LIKE or DISLIKE")
		return
	}

	reaction, err := h.commentService.React(r.Context(), userID, id, reactionType)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "reaction created", reaction)
}

func (h *CommentHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid comment id")
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Reason == "" {
		respondBadRequest(w, "reason is required")
		return
	}

	report, err := h.reportService.Create(r.Context(), service.CreateReportInput{
		Reason:    req.Reason,
		CommentID: &id,
	}, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "report created", report)
}
