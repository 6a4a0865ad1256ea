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

type PostHandler struct {
	postService *service.PostService
	repos       *repository.Repositories
}

func NewPostHandler(postService *service.PostService, repos *repository.Repositories) *PostHandler {
	return &PostHandler{
		postService: postService,
		repos:       repos,
	}
}

// Create publishes a new post. Requires AUTHOR weight.
// POST /api/v1/post
func (h *PostHandler) Create(c *gin.Context) {
	form := forms.CreatePost(h.repos)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	category := form.Entity("category").(*models.Category)

	err := h.postService.Create(user,
		form.Str("title"), form.Str("author"),
		form.Str("cover_image"), form.Str("content"),
		category,
	)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Created post successfully")
}

// List returns a page of posts, optionally filtered by category or uploader.
// GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	form := forms.GetPosts()
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	viewer := middleware.CurrentUser(c)
	posts, totalPages, err := h.postService.List(c.Request.Context(), viewer,
		form.Int("page"), form.Int("cid"), form.Int("uid"), form.Str("oby"))
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"posts":        postPayloads(posts),
		"total_page":   totalPages,
		"current_page": form.Int("page"),
	})
}

// Get returns one post with its category breadcrumb and counts the view.
// GET /api/v1/post/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	viewer := middleware.CurrentUser(c)
	post, err := h.postService.Get(c.Request.Context(), viewer, id)
	if err != nil {
		response.Abort(c, err)
		return
	}

	trail, err := h.postService.CategoryTrail(post.CategoryID)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"post":       postPayload(post),
		"categories": categoryPayloads(trail),
	})
}

// Modify updates a post's title, content or category. Requires AUTHOR weight.
// PATCH /api/v1/post/:id
func (h *PostHandler) Modify(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	form := forms.ModifyPost(h.repos)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	var category *models.Category
	if form.Present("category") {
		category = form.Entity("category").(*models.Category)
	}

	err := h.postService.Modify(id,
		form.Str("title"), form.Str("content"),
		form.Present("title"), form.Present("content"),
		category,
	)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete soft-deletes the caller's own post. Requires AUTHOR weight.
// DELETE /api/v1/post/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.postService.Delete(user, id); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// Like toggles the caller's like on a post.
// GET /api/v1/post/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	action, err := h.postService.ToggleLike(c.Request.Context(), user, id)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "Successfully " + action + " the post",
		"action":  action,
	})
}
