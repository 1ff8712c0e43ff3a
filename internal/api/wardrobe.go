package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"garderobe/internal/evaluation"
	"garderobe/internal/gateway"
	"garderobe/internal/models"
	"garderobe/internal/planner"
	"garderobe/internal/wardrobe"

	"github.com/gin-gonic/gin"
)

// Mutations respond with the post-mutation local state even when the
// remote write failed: the optimistic local copy is the user-visible
// source of truth, and a sync failure is reported alongside it in the
// syncError field for the client to surface.

// GetWardrobe returns the current inventory.
func (s *Server) GetWardrobe(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":     sess.store.Items(),
		"isLoading": sess.store.IsLoading(),
	})
}

// RefreshWardrobe replaces the inventory with the remote copy.
func (s *Server) RefreshWardrobe(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = sess.store.FetchItems(c.Request.Context())
	s.monitor.RecordSync(c.GetString("user_id"), "fetch_all", err)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sess.store.Items()})
}

// AddColor adds a color to a garment, creating the item on first color.
func (s *Server) AddColor(c *gin.Context) {
	var req struct {
		Color string `json:"color" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	syncErr := sess.store.AddColorToItem(c.Request.Context(), c.Param("id"), req.Color)
	s.monitor.RecordSync(c.GetString("user_id"), "add_color", syncErr)
	s.respondWithItems(c, sess, syncErr)
}

// UpdateColor replaces the color at the given position.
func (s *Server) UpdateColor(c *gin.Context) {
	var req struct {
		Color string `json:"color" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid color index"})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	syncErr := sess.store.UpdateColorOfItem(c.Request.Context(), c.Param("id"), index, req.Color)
	s.monitor.RecordSync(c.GetString("user_id"), "set_colors", syncErr)
	s.respondWithItems(c, sess, syncErr)
}

// RemoveColor removes the color at the given position; removing the last
// color deletes the item.
func (s *Server) RemoveColor(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid color index"})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	syncErr := sess.store.RemoveColorFromItem(c.Request.Context(), c.Param("id"), index)
	s.monitor.RecordSync(c.GetString("user_id"), "remove_color", syncErr)
	s.respondWithItems(c, sess, syncErr)
}

// DeleteItem removes a garment and all its colors.
func (s *Server) DeleteItem(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	syncErr := sess.store.DeleteEntireItem(c.Request.Context(), c.Param("id"))
	s.monitor.RecordSync(c.GetString("user_id"), "delete_item", syncErr)
	s.respondWithItems(c, sess, syncErr)
}

// GetOutfits returns the outfit calendar.
func (s *Server) GetOutfits(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outfits": sess.store.Outfits()})
}

// SetOutfit upserts the plan for one date.
func (s *Server) SetOutfit(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var outfit models.Outfit
	if err := c.ShouldBindJSON(&outfit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.store.SetOutfitForDate(date, outfit)
	c.JSON(http.StatusOK, sess.store.Outfits()[date])
}

// SetOutfitImage attaches a photo of the worn look to a date.
func (s *Server) SetOutfitImage(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var req struct {
		ImageURI string `json:"imageUri" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.store.SetOutfitImage(date, req.ImageURI)
	c.JSON(http.StatusOK, sess.store.Outfits()[date])
}

// PlanWeek generates outfits for the 7 days starting at the given date.
func (s *Server) PlanWeek(c *gin.Context) {
	var req struct {
		Start string `json:"start" binding:"required"`
		UseAI bool   `json:"useAI"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}

	sess, err := s.session(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mode := sess.planner.PlanWeek(c.Request.Context(), start, req.UseAI)

	report := s.evaluator.Evaluate(sess.store.Items(), sess.store.Outfits(), planner.WeekDates(start))
	evaluation.Record(mode, report)

	c.JSON(http.StatusOK, gin.H{
		"mode":    mode,
		"outfits": sess.store.Outfits(),
		"quality": report,
	})
}

// GetStatus returns operational metrics for the service.
func (s *Server) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

// respondWithItems maps mutation outcomes onto HTTP responses. Invariant
// violations made no local change and become client errors; remote
// failures left the optimistic local change in place and ride along as
// syncError.
func (s *Server) respondWithItems(c *gin.Context, sess *session, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"items": sess.store.Items()})
	case errors.Is(err, wardrobe.ErrUnknownGarment):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, wardrobe.ErrInvalidIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var remoteErr *gateway.RemoteError
		if errors.As(err, &remoteErr) {
			c.JSON(http.StatusOK, gin.H{
				"items":     sess.store.Items(),
				"syncError": remoteErr.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
