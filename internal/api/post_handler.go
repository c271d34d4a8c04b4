package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/storage"

	"github.com/gin-gonic/gin"
)

// PostHandler serves posts, comments and shares.
type PostHandler struct {
	d *service.Dispatcher
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(d *service.Dispatcher) *PostHandler {
	return &PostHandler{d: d}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type ShareRequest struct {
	Description string `json:"description"`
}

// --- Posts ---

// ListPosts returns the feed, loading it on first use or when ?reload=true.
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts := h.d.Lists().Posts
	if !posts.Loaded() || c.Query("reload") == "true" {
		if err := h.d.LoadFeed(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, posts.Items())
}

// ListUserPosts returns the posts of one profile.
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	userID := c.Param("id")
	lists := h.d.Lists()
	if lists.ProfileOwner() != userID || !lists.ProfilePosts.Loaded() || c.Query("reload") == "true" {
		if err := h.d.LoadUserPosts(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, lists.ProfilePosts.Items())
}

func (h *PostHandler) GetPost(c *gin.Context) {
	p, err := h.d.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePost godoc
// @Summary Create a post
// @Description Accepts JSON with media URLs, or multipart/form-data with
// @Description title, description and one or more "files".
// @Tags Posts
// @Success 201 {object} domain.Post
// @Failure 400 {object} gin.H "Invalid input"
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	draft, closeFiles, err := bindDraft(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	defer closeFiles()

	p, err := h.d.CreatePost(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	draft, closeFiles, err := bindDraft(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	defer closeFiles()

	p, err := h.d.UpdatePost(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.d.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) LikePost(c *gin.Context) {
	p, err := h.d.LikePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// bindDraft reads a post draft from JSON or a multipart form. The returned
// func closes any opened files.
func bindDraft(c *gin.Context) (service.PostDraft, func(), error) {
	var draft service.PostDraft
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&draft); err != nil {
			return draft, noop, err
		}
		return draft, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return draft, noop, err
	}
	draft.Title = c.PostForm("title")
	draft.Description = c.PostForm("description")
	draft.Images = c.PostFormArray("images")
	draft.Video = c.PostForm("video")

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return draft, noop, err
		}
		opened = append(opened, f)
		draft.Files = append(draft.Files, storage.MediaFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return draft, closeAll, nil
}

// --- Comments ---

func (h *PostHandler) ListComments(c *gin.Context) {
	postID := c.Param("id")
	comments := h.d.Lists().Comments(postID)
	if !comments.Loaded() || c.Query("reload") == "true" {
		if err := h.d.LoadComments(c.Request.Context(), postID); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, comments.Items())
}

// CloseComments tells the core the comment view of a post is gone. Late
// results for it are dropped.
func (h *PostHandler) CloseComments(c *gin.Context) {
	h.d.Lists().ReleaseComments(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	cm, err := h.d.AddComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (h *PostHandler) EditComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	cm, err := h.d.EditComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	if err := h.d.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Shares ---

func (h *PostHandler) ListShares(c *gin.Context) {
	shares := h.d.Lists().Shares
	if !shares.Loaded() || c.Query("reload") == "true" {
		if err := h.d.LoadShares(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, shares.Items())
}

func (h *PostHandler) SharePost(c *gin.Context) {
	var req ShareRequest
	// The description is optional, so is the body.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	sp, err := h.d.SharePost(c.Request.Context(), c.Param("id"), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

func (h *PostHandler) DeleteShare(c *gin.Context) {
	if err := h.d.DeleteShare(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) LikeShare(c *gin.Context) {
	sp, err := h.d.LikeShare(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}
