package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pbkm/badminton-split/internal/config"
	"github.com/pbkm/badminton-split/internal/utils"
)

// AuthHandler issues admin access tokens.
type AuthHandler struct {
	Cfg config.Config
	Log *zap.Logger
}

func NewAuthHandler(cfg config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Log: orNop(log)}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login checks the configured admin credentials and returns an ADMIN
// access token. Without ADMIN_PASSWORD_HASH every login is refused.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if h.Cfg.AdminPasswordHash == "" {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "admin login is not configured"})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Cfg.AdminUsername)) == 1
	passOK := utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password)
	if !userOK || !passOK {
		h.Log.Warn("admin login rejected", zap.String("username", req.Username), zap.String("remote_ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	at, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.AdminUsername, utils.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.Error("sign access token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"role":   utils.RoleAdmin,
		"access": tokenPart{Token: at.Token, Expires: at.Exp},
	})
}
