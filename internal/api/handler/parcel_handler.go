package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// ParcelHandler handles parcel listing, registration, status changes, and
// deletion.
type ParcelHandler struct {
	parcelService ports.ParcelService
}

func NewParcelHandler(parcelService ports.ParcelService) *ParcelHandler {
	return &ParcelHandler{parcelService: parcelService}
}

// List handles GET /v1/parcels?status=&search=.
//
// @Summary      List visible parcels
// @Description  Clients see their own parcels only; staff and admins see all.
// @Tags         parcels
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter; 'All' or empty disables it"
// @Param        search  query     string  false  "Case-insensitive tracking number substring"
// @Success      200     {object}  listParcelsResponse
// @Failure      400     {object}  errorEnvelope
// @Failure      401     {object}  errorEnvelope
// @Router       /v1/parcels [get]
func (h *ParcelHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	parcels, err := h.parcelService.List(c.Request().Context(), actor, ports.ListParcelsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListParcelsResponse(parcels))
}

// Create handles POST /v1/parcels.
//
// @Summary      Register a new parcel
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createParcelRequest  true  "Parcel details"
// @Success      201   {object}  parcelResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Router       /v1/parcels [post]
func (h *ParcelHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createParcelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.parcelService.Create(c.Request().Context(), actor, ports.CreateParcelInput{
		TrackingNumber: req.TrackingNumber,
		Sender:         req.Sender,
		ClientID:       req.ClientID,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toParcelResponse(parcel))
}

// UpdateStatus handles PUT /v1/parcels/:id/status.
//
// @Summary      Move a parcel to a new status
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Parcel id"
// @Param        body  body      transitionParcelRequest  true  "Target status"
// @Success      200   {object}  parcelResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /v1/parcels/{id}/status [put]
func (h *ParcelHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req transitionParcelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.parcelService.Transition(c.Request().Context(), actor, c.Param("id"), domain.ParcelStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toParcelResponse(parcel))
}

// Delete handles DELETE /v1/parcels/:id.
//
// @Summary      Delete a parcel record
// @Tags         parcels
// @Security     BearerAuth
// @Param        id  path  string  true  "Parcel id"
// @Success      204  "No Content"
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /v1/parcels/{id} [delete]
func (h *ParcelHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.parcelService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
