package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/dto"
	"github.com/stayfindz/backend/internal/middleware"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
	"github.com/stayfindz/backend/internal/service"
)

type ListingHandler struct {
	svc       service.ListingService
	jwtSecret string
}

func NewListingHandler(svc service.ListingService, jwtSecret string) *ListingHandler {
	return &ListingHandler{svc: svc, jwtSecret: jwtSecret}
}

func (h *ListingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/listings")
	g.GET("", h.List)
	g.GET("/popular", h.Popular)
	g.GET("/trending", h.Trending)
	g.GET("/:id", h.Get)

	hostOnly := middleware.RequireRole(models.RoleHost, models.RoleAdmin)
	authed := g.Group("", middleware.JWTAuth(h.jwtSecret))
	authed.POST("/create-listing", h.Create, hostOnly)
	authed.PUT("/:id", h.Update, hostOnly)
	authed.DELETE("/delete-listing/:id", h.Delete, hostOnly)
}

func (h *ListingHandler) Create(c echo.Context) error {
	var req dto.ListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.svc.CreateListing(c.Request().Context(), middleware.UserID(c), listingInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ListingResponse{Success: true, Listing: listing})
}

func (h *ListingHandler) List(c echo.Context) error {
	listings, err := h.svc.ListListings(c.Request().Context(), repository.ListingFilters{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ListingsResponse{Success: true, Listings: listings})
}

// Get returns a listing and counts the detail view.
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	listing, err := h.svc.GetListing(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ListingResponse{Success: true, Listing: listing})
}

func (h *ListingHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.svc.UpdateListing(c.Request().Context(), actorFrom(c), id, listingInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ListingResponse{Success: true, Listing: listing})
}

func (h *ListingHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteListing(c.Request().Context(), actorFrom(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "listing deleted"})
}

func (h *ListingHandler) Popular(c echo.Context) error {
	listings, err := h.svc.Popular(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.RankedListingsResponse{Success: true, Listings: listings})
}

func (h *ListingHandler) Trending(c echo.Context) error {
	listings, err := h.svc.Trending(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.RankedListingsResponse{Success: true, Listings: listings})
}

func listingInput(req dto.ListingRequest) service.ListingInput {
	return service.ListingInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Beds:          req.Beds,
		Bathrooms:     req.Bathrooms,
		Amenities:     req.Amenities,
		Images:        req.Images,
		Category:      req.Category,
	}
}

func actorFrom(c echo.Context) service.Actor {
	return service.Actor{ID: middleware.UserID(c), Role: middleware.Role(c)}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
