package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safaruz/internal/service"
)

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
}

// UpdateProfile обработчик для POST /profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Укажите имя и корректный email")
		return
	}
	username := req.Username
	if username == "" {
		username = req.Name
	}
	user, err := h.Users.UpdateProfile(c.Request.Context(), principal(c).ID, username, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Профиль обновлён", "user": user})
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword обработчик для PATCH /profile.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Укажите текущий и новый пароль")
		return
	}
	err := h.Users.ChangePassword(c.Request.Context(), principal(c).ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Пароль изменён"})
}

// DeleteProfile удаляет аккаунт и отзывает текущий токен.
func (h *Handler) DeleteProfile(c *gin.Context) {
	p := principal(c)
	if err := h.Users.DeleteAccount(c.Request.Context(), p.ID); err != nil {
		respondError(c, err)
		return
	}
	// Аккаунт уже удалён, поэтому сбой отзыва токена только логируется.
	if err := h.Auth.Logout(c.Request.Context(), p); err != nil {
		loggerFrom(c).Warn("token revocation after account deletion failed", zap.Int("user_id", p.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Аккаунт удалён"})
}

// UploadProfileImage обработчик для POST /upload-profile (multipart, поле image).
func (h *Handler) UploadProfileImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxUploadSize+1<<20)
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "Прикрепите изображение в поле image")
		return
	}
	if fh.Size > service.MaxUploadSize {
		badRequest(c, "Размер изображения не должен превышать 5 МБ")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	path, err := h.Uploads.SaveProfileImage(c.Request.Context(), principal(c).ID, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Изображение загружено", "profile_image": path})
}
