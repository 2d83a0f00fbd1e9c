package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api/middleware"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
	reportService  *service.ReportService
}

func NewPostHandler(
	postService *service.PostService,
	commentService *service.CommentService,
	reportService *service.ReportService,
) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
		reportService:  reportService,
	}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	IsDraft bool   `json:"isDraft"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Body    *string `json:"body"`
	IsDraft *bool   `json:"isDraft"`
}

type ReactionRequest struct {
	Type string `json:"type"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "posts found", posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "post found", post)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" || req.Body == "" {
		respondBadRequest(w, "title and body are required")
		return
	}

	post, err := h.postService.Create(r.Context(), service.CreatePostInput{
		Title:   req.Title,
		Body:    req.Body,
		IsDraft: req.IsDraft,
	}, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "post created", post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), id, service.UpdatePostInput{
		Title:   req.Title,
		Body:    req.Body,
		IsDraft: req.IsDraft,
	}, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "post updated", post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}

	message, err := h.postService.DeleteWithMessage(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, message, nil)
}

func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
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

	reaction, err := h.postService.React(r.Context(), userID, id, reactionType)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "reaction created", reaction)
}

type PostReactionsResponse struct {
	Post      *domain.Post             `json:"post"`
	Reactions []*domain.ReactionDetail `json:"reactions"`
}

// ListReactions returns the post together with every user who reacted to it.
func (h *PostHandler) ListReactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	reactions, err := h.postService.Reactions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "reactions found", PostReactionsResponse{Post: post, Reactions: reactions})
}

func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}

	comments, err := h.commentService.ListByPost(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "comments found", comments)
}

func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}

	var req struct {
		Body    string `json:"body"`
		IsDraft bool   `json:"isDraft"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Body == "" {
		respondBadRequest(w, "body is required")
		return
	}

	comment, err := h.commentService.Create(r.Context(), service.CreateCommentInput{
		Body:    req.Body,
		IsDraft: req.IsDraft,
	}, userID, id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "comment created", comment)
}

func (h *PostHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
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
		Reason: req.Reason,
		PostID: &id,
	}, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "report created", report)
}
