package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/dto"
	"github.com/stayfindz/backend/internal/middleware"
	"github.com/stayfindz/backend/internal/service"
)

type UserHandler struct {
	svc       service.AuthService
	jwtSecret string
}

func NewUserHandler(svc service.AuthService, jwtSecret string) *UserHandler {
	return &UserHandler{svc: svc, jwtSecret: jwtSecret}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/user")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	authed := g.Group("", middleware.JWTAuth(h.jwtSecret))
	authed.GET("/me", h.Me)
	authed.PUT("/profile", h.UpdateProfile)
	authed.POST("/become-host", h.BecomeHost)
	authed.POST("/toggle-wishlist", h.ToggleWishlist)
	authed.GET("/wishlist", h.Wishlist)
}

func (h *UserHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.AuthResponse{Success: true, Token: token, User: user})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token, User: user})
}

func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), middleware.UserID(c), service.ProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) BecomeHost(c echo.Context) error {
	user, err := h.svc.BecomeHost(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) ToggleWishlist(c echo.Context) error {
	var req dto.ToggleWishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	added, err := h.svc.ToggleWishlist(c.Request().Context(), middleware.UserID(c), req.ListingID)
	if err != nil {
		return toHTTPError(err)
	}

	msg := "removed from wishlist"
	if added {
		msg = "added to wishlist"
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: msg})
}

func (h *UserHandler) Wishlist(c echo.Context) error {
	listings, err := h.svc.Wishlist(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ListingsResponse{Success: true, Listings: listings})
}
