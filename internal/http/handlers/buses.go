package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"busfront/internal/domain"
	"busfront/internal/utils"
)

// GET /api/buses
func (a *API) ListBuses(c *gin.Context) {
	buses, err := a.Backend.ListBuses(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GET /api/buses/:id
//
// The detail response carries the derived seat map so the page only renders.
func (a *API) GetBus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid bus id", err)
		return
	}

	bus, err := a.Backend.GetBus(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	sel := domain.NewSeatSelection(bus)
	c.JSON(http.StatusOK, gin.H{
		"bus":   bus,
		"seats": sel.SeatMap(),
	})
}

// GET /api/buses/search?source=&destination=&date=
//
// The form may submit a full datetime; only the calendar day is forwarded,
// and a date that does not parse is rejected before the backend sees it.
func (a *API) SearchBuses(c *gin.Context) {
	source := utils.TrimOrEmpty(c.Query("source"))
	destination := utils.TrimOrEmpty(c.Query("destination"))
	date := utils.DateOnly(c.Query("date"))
	if source == "" || destination == "" || date == "" {
		RespondError(c, http.StatusBadRequest, "Please fill in all fields", nil)
		return
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid travel date", err)
		return
	}

	buses, err := a.Backend.SearchBuses(c.Request.Context(), source, destination, utils.FormatDate(day))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}
