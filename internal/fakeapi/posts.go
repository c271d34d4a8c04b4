package fakeapi

import (
	"net/http"
	"time"

	"alcyxob/fitsocial/internal/domain"

	"github.com/gin-gonic/gin"
)

type keyed interface {
	Key() string
}

func indexOf[T keyed](items []T, id string) int {
	for i := range items {
		if items[i].Key() == id {
			return i
		}
	}
	return -1
}

// SeedPost stores a post as if created through the API.
func (s *Server) SeedPost(p domain.Post) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertPost(p)
}

// Post returns the stored post with id.
func (s *Server) Post(id string) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.posts, id); i >= 0 {
		return s.posts[i], true
	}
	return domain.Post{}, false
}

func (s *Server) insertPost(p domain.Post) domain.Post {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Date == "" {
		p.Date = time.Now().UTC().Format(time.RFC3339)
	}
	for i := range p.Comments {
		if p.Comments[i].ID == "" {
			p.Comments[i].ID = newID()
		}
		p.Comments[i].PostID = p.ID
	}
	p.LikeCount = len(p.LikedBy)
	s.posts = append(s.posts, p)
	return p
}

func (s *Server) listPosts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]domain.Post{}, s.posts...))
}

func (s *Server) listUserPosts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Post{}
	for _, p := range s.posts {
		if p.UserID == c.Param("userId") {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getPost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.posts, c.Param("id"))
	if i < 0 {
		notFound(c, "Post")
		return
	}
	c.JSON(http.StatusOK, s.posts[i])
}

func (s *Server) createPost(c *gin.Context) {
	var p domain.Post
	if err := c.ShouldBindJSON(&p); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	p.ID, p.LikedBy, p.Comments = "", nil, nil
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, s.insertPost(p))
}

func (s *Server) updatePost(c *gin.Context) {
	var p domain.Post
	if err := c.ShouldBindJSON(&p); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.posts, p.ID)
	if i < 0 {
		notFound(c, "Post")
		return
	}
	cur := &s.posts[i]
	cur.Title = p.Title
	cur.Description = p.Description
	if len(p.Images) > 0 {
		cur.Images, cur.Video = p.Images, ""
	}
	if p.Video != "" {
		cur.Video, cur.Images = p.Video, nil
	}
	c.JSON(http.StatusOK, *cur)
}

func (s *Server) deletePost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.posts, c.Param("id"))
	if i < 0 {
		notFound(c, "Post")
		return
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) likePost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.posts, c.Query("postId"))
	if i < 0 {
		notFound(c, "Post")
		return
	}
	p := &s.posts[i]
	p.LikedBy = toggle(p.LikedBy, c.Query("userId"))
	p.LikeCount = len(p.LikedBy)
	c.JSON(http.StatusOK, *p)
}

func toggle(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return without(ids, id)
		}
	}
	return append(ids, id)
}

// --- Comments ---

func (s *Server) listComments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.posts, c.Param("postId"))
	if i < 0 {
		notFound(c, "Post")
		return
	}
	c.JSON(http.StatusOK, append([]domain.Comment{}, s.posts[i].Comments...))
}

func (s *Server) addComment(c *gin.Context) {
	content := c.Query("content")
	if content == "" {
		abortWithError(c, http.StatusBadRequest, "Comment content is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.posts, c.Param("postId"))
	if i < 0 {
		notFound(c, "Post")
		return
	}
	cm := domain.Comment{
		ID:               newID(),
		PostID:           s.posts[i].ID,
		Content:          content,
		CommentBy:        c.Query("commentBy"),
		CommentByID:      c.Query("commentById"),
		CommentByProfile: c.Query("commentByProfile"),
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	s.posts[i].Comments = append(s.posts[i].Comments, cm)
	c.JSON(http.StatusCreated, cm)
}

func (s *Server) updateComment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pi := range s.posts {
		if ci := indexOf(s.posts[pi].Comments, c.Param("id")); ci >= 0 {
			s.posts[pi].Comments[ci].Content = c.Query("content")
			c.JSON(http.StatusOK, s.posts[pi].Comments[ci])
			return
		}
	}
	notFound(c, "Comment")
}

func (s *Server) deleteComment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pi := indexOf(s.posts, c.Param("postId"))
	if pi < 0 {
		notFound(c, "Post")
		return
	}
	comments := s.posts[pi].Comments
	ci := indexOf(comments, c.Param("id"))
	if ci < 0 {
		notFound(c, "Comment")
		return
	}
	s.posts[pi].Comments = append(comments[:ci:ci], comments[ci+1:]...)
	c.Status(http.StatusNoContent)
}

// --- Shares ---

// SeedShare stores a shared post.
func (s *Server) SeedShare(sh domain.SharedPost) domain.SharedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh.ID == "" {
		sh.ID = newID()
	}
	s.shares = append(s.shares, sh)
	return sh
}

func (s *Server) listShares(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]domain.SharedPost{}, s.shares...))
}

func (s *Server) createShare(c *gin.Context) {
	var req domain.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[req.UserID]
	if !ok {
		notFound(c, "User")
		return
	}
	pi := indexOf(s.posts, req.PostID)
	if pi < 0 {
		notFound(c, "Post")
		return
	}
	sh := domain.SharedPost{
		ID:          newID(),
		SharedBy:    acc.user,
		Description: req.Description,
		Post:        s.posts[pi],
	}
	s.shares = append(s.shares, sh)
	c.JSON(http.StatusCreated, sh)
}

func (s *Server) deleteShare(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.shares, c.Param("id"))
	if i < 0 {
		notFound(c, "Shared post")
		return
	}
	s.shares = append(s.shares[:i], s.shares[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) likeShare(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.shares, c.Query("shareId"))
	if i < 0 {
		notFound(c, "Shared post")
		return
	}
	sh := &s.shares[i]
	sh.LikedBy = toggle(sh.LikedBy, c.Query("userId"))
	sh.LikeCount = len(sh.LikedBy)
	c.JSON(http.StatusOK, *sh)
}
