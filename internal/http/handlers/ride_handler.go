// README: Ride intake and status-polling handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ridedispatch/internal/modules/ride"
)

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(svc *ride.Service) *RideHandler {
	return &RideHandler{rides: svc}
}

type requestRideReq struct {
	UserID      string `json:"user_id"`
	Source      string `json:"source_location"`
	Destination string `json:"destination_location"`
}

// Create inserts a pending request row. The dispatch loop picks it up from
// the store; nothing here waits for a match.
func (h *RideHandler) Create(c *gin.Context) {
	var req requestRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.rides.Create(c.Request.Context(), ride.CreateCommand{
		UserID:      req.UserID,
		Source:      req.Source,
		Destination: req.Destination,
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"request_id": id,
		"status":     ride.StatusPending,
	})
}

func (h *RideHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid request id")
		return
	}
	r, err := h.rides.Get(c.Request.Context(), id)
	if err != nil {
		writeRideError(c, err)
		return
	}
	resp := gin.H{
		"request_id":           r.ID,
		"user_id":              r.UserID,
		"source_location":      r.Source,
		"destination_location": r.Destination,
		"status":               r.Status,
		"created_at":           r.CreatedAt,
	}
	if r.MatchedAt != nil {
		resp["matched_at"] = r.MatchedAt
	}
	if r.CompletedAt != nil {
		resp["completed_at"] = r.CompletedAt
	}
	if r.DriverRef != nil {
		resp["driver_ref"] = r.DriverRef
	}
	c.JSON(http.StatusOK, resp)
}
