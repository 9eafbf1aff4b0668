package devserver

import (
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

func (s *Server) handleRegister(c *gin.Context) {
	var reg models.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	// DRF-style per-field validation errors.
	fieldErrs := gin.H{}
	if reg.Username == "" {
		fieldErrs["username"] = []string{"This field is required."}
	}
	if reg.Email == "" {
		fieldErrs["email"] = []string{"This field is required."}
	} else if _, err := mail.ParseAddress(reg.Email); err != nil {
		fieldErrs["email"] = []string{"Enter a valid email address."}
	}
	if len(reg.Password) < 8 {
		fieldErrs["password"] = []string{"This password is too short. It must contain at least 8 characters."}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[reg.Username]; exists {
		fieldErrs["username"] = []string{"A user with that username already exists."}
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	s.nextUserID++
	a := &account{
		id:        s.nextUserID,
		username:  reg.Username,
		email:     reg.Email,
		password:  reg.Password,
		firstName: reg.FirstName,
		lastName:  reg.LastName,
	}
	s.accounts[a.username] = a

	c.JSON(http.StatusCreated, userJSON(a))
}

func (s *Server) handleToken(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[creds.Username]
	if !ok || a.password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	access, err := s.issueAccessToken(a.id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, models.TokenPair{
		Access:  access,
		Refresh: s.issueRefreshToken(a.id),
	})
}

func (s *Server) handleTokenRefresh(c *gin.Context) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, rotated, err := s.rotateRefreshToken(body.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	access, err := s.issueAccessToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, models.TokenPair{Access: access, Refresh: rotated})
}

func (s *Server) handleGetUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accountByID(s.userID(c))
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, userJSON(a))
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accountByID(s.userID(c))
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	if update.Email != nil {
		if _, err := mail.ParseAddress(*update.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"email": []string{"Enter a valid email address."}})
			return
		}
		a.email = *update.Email
	}
	if update.FirstName != nil {
		a.firstName = *update.FirstName
	}
	if update.LastName != nil {
		a.lastName = *update.LastName
	}

	c.JSON(http.StatusOK, userJSON(a))
}
