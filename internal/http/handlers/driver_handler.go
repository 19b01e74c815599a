// README: Driver registration and availability-listing handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridedispatch/internal/modules/driver"
)

type DriverHandler struct {
	drivers *driver.Store
}

func NewDriverHandler(store *driver.Store) *DriverHandler {
	return &DriverHandler{drivers: store}
}

type registerDriverReq struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Location string `json:"current_location"`
}

// Register upserts a driver keyed by the external driver_id. Re-registering
// refreshes name, status, and location.
func (h *DriverHandler) Register(c *gin.Context) {
	var req registerDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DriverID == "" || req.Name == "" || req.Location == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	status := driver.Status(req.Status)
	if req.Status == "" {
		status = driver.StatusAvailable
	}
	if !status.Valid() {
		writeError(c, http.StatusBadRequest, "invalid status")
		return
	}
	id, err := h.drivers.Upsert(c.Request.Context(), &driver.Driver{
		DriverID: req.DriverID,
		Name:     req.Name,
		Status:   status,
		Location: req.Location,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":        id,
		"driver_id": req.DriverID,
		"status":    status,
	})
}

func (h *DriverHandler) Available(c *gin.Context) {
	list, err := h.drivers.ListByStatus(c.Request.Context(), driver.StatusAvailable)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, d := range list {
		out = append(out, gin.H{
			"driver_id": d.DriverID,
			"name":      d.Name,
			"status":    d.Status,
			"location":  d.Location,
		})
	}
	c.JSON(http.StatusOK, gin.H{"drivers": out})
}
