package handlers

import (
	"net/http"
	"time"

	"hrtime/config"
	"hrtime/database"
	"hrtime/middleware"
	"hrtime/models"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":                token,
		"user":                 user,
		"must_change_password": user.MustChangePassword,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Verify current password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	if len(req.NewPassword) < 5 {
		respondError(w, http.StatusBadRequest, "Password must be at least 5 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	// Regenerate token with updated user info
	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

type registerRequest struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var invite models.Invite
	if err := database.GetDB().Where("code = ?", req.Code).First(&invite).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Invalid invite code")
		return
	}

	if !invite.IsValid() {
		respondError(w, http.StatusBadRequest, "Invite code has expired or already been used")
		return
	}

	if len(req.Username) < 3 {
		respondError(w, http.StatusBadRequest, "Username must be at least 3 characters")
		return
	}

	if len(req.Password) < 5 {
		respondError(w, http.StatusBadRequest, "Password must be at least 5 characters")
		return
	}

	// Check if username already exists
	var existingUser models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := models.User{
		Username:     req.Username,
		FullName:     invite.FullName,
		PasswordHash: string(hashedPassword),
		Role:         invite.Role,
		EmployeeID:   invite.EmployeeID,
		// User set their own password during registration
		MustChangePassword: false,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// Mark invite as used
	invite.Used = true
	database.GetDB().Save(&invite)

	// Generate token and log user in
	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanCreateInvites() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var invites []models.Invite
	database.GetDB().Preload("Employee").
		Where("created_by = ?", user.ID).Order("created_at desc").Find(&invites)
	respondJSON(w, http.StatusOK, invites)
}

type createInviteRequest struct {
	Role       string `json:"role"`
	FullName   string `json:"full_name"`
	EmployeeID *uint  `json:"employee_id"`
}

func (h *AuthHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanCreateInvites() {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req createInviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var role models.Role
	switch req.Role {
	case "EMPLOYEE":
		role = models.RoleEmployee
	case "HR":
		role = models.RoleHR
	default:
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	if req.EmployeeID != nil {
		var employee models.Employee
		if err := database.GetDB().First(&employee, *req.EmployeeID).Error; err != nil {
			respondError(w, http.StatusBadRequest, "Employee not found")
			return
		}
	}

	code, err := models.GenerateInviteCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate invite code")
		return
	}

	invite := models.Invite{
		Code:       code,
		FullName:   req.FullName,
		Role:       role,
		CreatedBy:  user.ID,
		EmployeeID: req.EmployeeID,
		ExpiresAt:  time.Now().Add(h.config.InviteExpiration),
	}

	if err := database.GetDB().Create(&invite).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create invite")
		return
	}

	respondJSON(w, http.StatusCreated, invite)
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
