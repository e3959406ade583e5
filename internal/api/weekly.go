package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing
	"time"     // Report time zone

	"github.com/gin-gonic/gin" // Gin web framework

	"waste_tracker/internal/report" // PDF rendering
)

// WeeklyWasteHandler returns the caller's entries for one week grouped by weekday
func WeeklyWasteHandler(weekly WeeklyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		offset, ok := weekOffset(c)
		if !ok {
			return
		}
		r, cached, err := weekly.Weekly(c.Request.Context(), p, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newWeeklyResponse(r, cached))
	}
}

// WeeklyPDFHandler returns the same report rendered as a PDF attachment
func WeeklyPDFHandler(weekly WeeklyService, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		offset, ok := weekOffset(c)
		if !ok {
			return
		}
		r, _, err := weekly.Weekly(c.Request.Context(), p, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		doc, err := report.BuildWeeklyPDF(p.Username, r, loc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+report.WeeklyFilename(r.WeekStart)+`"`)
		c.Data(http.StatusOK, "application/pdf", doc)
	}
}

// weekOffset reads ?week_offset, defaulting to the current week
func weekOffset(c *gin.Context) (int, bool) {
	raw := c.Query("week_offset")
	if raw == "" {
		return 0, true
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_offset must be an integer"})
		return 0, false
	}
	return offset, true
}
