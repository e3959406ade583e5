package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path and query parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// AddWasteRequest is the body of POST /api/waste
type AddWasteRequest struct {
	Item string `form:"item" json:"item"` // Raw item name, normalized by the service
}

// ListWasteHandler returns all of the caller's entries, newest first
func ListWasteHandler(entries EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		list, err := entries.List(c.Request.Context(), p)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newEntryResponses(list))
	}
}

// TodayWasteHandler returns the caller's entries for today
func TodayWasteHandler(entries EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		list, err := entries.Today(c.Request.Context(), p)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newEntryResponses(list))
	}
}

// AddWasteHandler records a new entry
func AddWasteHandler(entries EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req AddWasteRequest // Bind form or JSON body
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		entry, err := entries.Add(c.Request.Context(), p, req.Item)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newEntryResponse(*entry))
	}
}

// DeleteWasteHandler removes one of the caller's entries
func DeleteWasteHandler(entries EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
			return
		}
		if err := entries.Delete(c.Request.Context(), p, uint(id)); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
	}
}
