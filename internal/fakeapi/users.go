package fakeapi

import (
	"net/http"
	"sort"
	"strings"

	"alcyxob/fitsocial/internal/domain"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// SeedUser registers an account directly and returns the stored user.
func (s *Server) SeedUser(reg domain.Registration) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAccount(reg)
}

// User returns the stored user with id.
func (s *Server) User(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return acc.user, true
}

// createAccount must be called with mu held.
func (s *Server) createAccount(reg domain.Registration) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.MinCost)
	if err != nil {
		return domain.User{}, err
	}
	acc := &account{
		user: domain.User{
			ID:           newID(),
			Name:         reg.Name,
			Email:        strings.ToLower(reg.Email),
			MobileNumber: reg.MobileNumber,
			ProfileImage: reg.ProfileImage,
		},
		passwordHash: hash,
	}
	s.accounts[acc.user.Email] = acc
	s.users[acc.user.ID] = acc
	return acc.user, nil
}

func (s *Server) register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[strings.ToLower(reg.Email)]; exists {
		abortWithError(c, http.StatusConflict, "User with this email already exists")
		return
	}
	u, err := s.createAccount(reg)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[strings.ToLower(creds.Email)]
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)) != nil {
		c.String(http.StatusUnauthorized, "Invalid email or password")
		return
	}
	acc.user.Active = true
	s.currentUserID = acc.user.ID
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[s.currentUserID]
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) deactivate(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[c.Param("id")]
	if !ok {
		notFound(c, "User")
		return
	}
	acc.user.Active = false
	if s.currentUserID == acc.user.ID {
		s.currentUserID = ""
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) getUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[c.Param("id")]
	if !ok {
		notFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) updateUser(c *gin.Context) {
	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[c.Param("id")]
	if !ok {
		notFound(c, "User")
		return
	}
	if upd.Email != "" && !strings.EqualFold(upd.Email, acc.user.Email) {
		if _, taken := s.accounts[strings.ToLower(upd.Email)]; taken {
			abortWithError(c, http.StatusConflict, "Email is already in use")
			return
		}
		delete(s.accounts, acc.user.Email)
		acc.user.Email = strings.ToLower(upd.Email)
		s.accounts[acc.user.Email] = acc
	}
	if upd.Name != "" {
		acc.user.Name = upd.Name
	}
	if upd.ProfileImage != "" {
		acc.user.ProfileImage = upd.ProfileImage
	}
	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.MinCost)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Could not update password")
			return
		}
		acc.passwordHash = hash
	}
	c.JSON(http.StatusOK, acc.user)
}

// follow toggles the follow relation and returns the followed user.
func (s *Server) follow(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	follower, ok := s.users[c.Query("userId")]
	if !ok {
		notFound(c, "User")
		return
	}
	followed, ok := s.users[c.Query("FollowedUserId")]
	if !ok {
		notFound(c, "User")
		return
	}
	if follower.user.ID == followed.user.ID {
		abortWithError(c, http.StatusBadRequest, "You cannot follow yourself")
		return
	}
	if followed.user.IsFollowedBy(follower.user.ID) {
		followed.user.Followers = without(followed.user.Followers, follower.user.ID)
		follower.user.FollowingCount--
	} else {
		followed.user.Followers = append(followed.user.Followers, follower.user.ID)
		follower.user.FollowingCount++
	}
	followed.user.FollowersCount = len(followed.user.Followers)
	c.JSON(http.StatusOK, followed.user)
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.usersWhere(func(domain.User) bool { return true }))
}

func (s *Server) listActiveUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.usersWhere(func(u domain.User) bool { return u.Active }))
}

func (s *Server) usersWhere(keep func(domain.User) bool) []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, acc := range s.users {
		if keep(acc.user) {
			out = append(out, acc.user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Server) deleteUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[c.Param("id")]
	if !ok {
		notFound(c, "User")
		return
	}
	delete(s.users, acc.user.ID)
	delete(s.accounts, acc.user.Email)
	if s.currentUserID == acc.user.ID {
		s.currentUserID = ""
	}
	c.Status(http.StatusNoContent)
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
