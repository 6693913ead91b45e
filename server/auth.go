package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lemiae/PlantShelf/apperr"
	"github.com/lemiae/PlantShelf/model"
)

const ctxUserKey = "currentUser"

// Register creates an account and hands back its bearer token. This is the
// identity boundary stub: everything past it only needs an ownership key.
func (s *Server) Register(c *gin.Context) {
	var input model.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorJSON(c, apperr.Validationf("invalid payload"))
		return
	}

	username := strings.TrimSpace(input.Username)
	if len([]rune(username)) < 2 {
		errorJSON(c, apperr.Validationf("username must be at least 2 characters"))
		return
	}

	user := model.User{Username: username, Token: uuid.NewString()}
	if err := s.ctrl.DB().Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			errorJSON(c, apperr.Conflictf("username %q taken", username))
			return
		}
		errorJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"token":    user.Token,
	})
}

// RequireUser resolves the bearer token to a user and stores it on the
// context. Websocket clients may pass the token as a query parameter.
func (s *Server) RequireUser(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		abortJSON(c, apperr.ErrPermissionDenied)
		return
	}

	var user model.User
	if err := s.ctrl.DB().Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortJSON(c, apperr.ErrPermissionDenied)
			return
		}
		abortJSON(c, err)
		return
	}

	c.Set(ctxUserKey, &user)
	c.Next()
}

func currentUser(c *gin.Context) *model.User {
	return c.MustGet(ctxUserKey).(*model.User)
}

func errorJSON(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
}

func abortJSON(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": err.Error()})
}
