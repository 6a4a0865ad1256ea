package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/forms"
	"github.com/mangahub/mangahub/internal/middleware"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	repos          *repository.Repositories
}

func NewCommentHandler(commentService *service.CommentService, repos *repository.Repositories) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		repos:          repos,
	}
}

// ListByPost returns a page of comments for a post.
// GET /api/v1/post/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	form := forms.GetPostComments()
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	comments, totalPages, err := h.commentService.ListByPost(postID, form.Int("page"), form.Str("oby"))
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"comments":     commentPayloads(comments),
		"total_page":   totalPages,
		"current_page": form.Int("page"),
	})
}

// Create adds a top-level comment to a post.
// POST /api/v1/post/:id/comment
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	form := forms.CreatePostComment()
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.commentService.Add(user, postID, form.Str("content")); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// Reply adds a reply under an existing comment.
// POST /api/v1/comment/:id/reply
func (h *CommentHandler) Reply(c *gin.Context) {
	if _, ok := pathID(c, "id"); !ok {
		return
	}

	form := forms.ReplyPostComment(h.repos)
	err := form.Bind(c, map[string]string{"parent": c.Param("id")})
	if err != nil {
		response.Abort(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	target := form.Entity("parent").(*models.Comment)

	if err := h.commentService.Reply(user, target, form.Str("content")); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// Modify updates a comment's content or parent. Requires MANAGER weight.
// PATCH /api/v1/comment/:id
func (h *CommentHandler) Modify(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	form := forms.ModifyPostComment(h.repos)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	var parent *models.Comment
	if form.Present("parent") {
		parent = form.Entity("parent").(*models.Comment)
	}

	err := h.commentService.Modify(id, form.Str("content"), form.Present("content"), parent)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete soft-deletes a comment. Requires MANAGER weight.
// DELETE /api/v1/comment/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(id); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}
