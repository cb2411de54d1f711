package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListPosts  = "failed to load posts"
	errGetPost    = "failed to load post"
	errCreatePost = "failed to create post"
	errUpdatePost = "failed to update post"
	errDeletePost = "failed to delete post"

	errBadPostID = "invalid post id"
)

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Pointer fields distinguish "absent" from "present but empty".
type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// postIDParam parses the :id path parameter, answering 400 on garbage.
func (h *Handler) postIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadPostID})
		return 0, false
	}
	return id, true
}

// respondPostError translates post service errors into HTTP statuses.
// Anything unrecognized is a 500 with the detail kept server-side.
func (h *Handler) respondPostError(c *gin.Context, err error, userMsg, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, service.ErrNotPostAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only modify your own posts"})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
	}
}

// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      500  {object}  map[string]string
// @Router       /api/post/ [get]
func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.services.ListPosts(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListPosts, "post_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  models.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/post/{id} [get]
func (h *Handler) getPost(c *gin.Context) {
	id, ok := h.postIDParam(c)
	if !ok {
		return
	}
	post, err := h.services.GetPost(c.Request.Context(), id)
	if err != nil {
		h.respondPostError(c, err, errGetPost, "post_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body  createPostRequest  true  "Post fields"
// @Success      201  {object}  models.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/post/ [post]
// @Security     BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var input createPostRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	post, err := h.services.CreatePost(c.Request.Context(), claims.UserID, input.Title, input.Content)
	if err != nil {
		h.respondPostError(c, err, errCreatePost, "post_create_failed", "author_id", claims.UserID)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// @Summary      Update a post
// @Description  Partial update; only supplied fields change. Author only.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Post ID"
// @Param        body  body  updatePostRequest  true  "Fields to change"
// @Success      200  {object}  models.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/post/{id} [put]
// @Security     BearerAuth
func (h *Handler) updatePost(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	id, ok := h.postIDParam(c)
	if !ok {
		return
	}

	var input updatePostRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	post, err := h.services.UpdatePost(c.Request.Context(), id, claims.UserID, service.PostPatch{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		h.respondPostError(c, err, errUpdatePost, "post_update_failed", "id", id, "caller_id", claims.UserID)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/post/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePost(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	id, ok := h.postIDParam(c)
	if !ok {
		return
	}

	if err := h.services.DeletePost(c.Request.Context(), id, claims.UserID); err != nil {
		h.respondPostError(c, err, errDeletePost, "post_delete_failed", "id", id, "caller_id", claims.UserID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
