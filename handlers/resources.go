package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"musicminds/models"
	"musicminds/services/backend"
	"musicminds/services/listing"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
)

// ViewIDHeader lets one browser tab run several independent tables of the same
// resource without cancelling each other.
const ViewIDHeader = "X-View-ID"

// ResourceHandler serves list views and forwards single-record operations.
type ResourceHandler struct {
	Listing listing.ListingService
	Backend backend.Requester
	Tracker *listing.Tracker
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(l listing.ListingService, b backend.Requester) *ResourceHandler {
	return &ResourceHandler{Listing: l, Backend: b, Tracker: listing.NewTracker()}
}

// List returns one normalized page. A newer list request from the same session
// and view cancels this one.
func (h *ResourceHandler) List(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requireToken(c)
		if !ok {
			return
		}

		var q models.ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
			return
		}
		q.Extra = listing.ExtraParams(c.Request.URL.Query())

		key := utils.HashToken(token) + ":" + resource + ":" + c.GetHeader(ViewIDHeader)
		ctx, gen := h.Tracker.Begin(c.Request.Context(), key)
		page, err := h.Listing.FetchPage(ctx, token, resource, q)
		current := h.Tracker.Done(key, gen)

		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if !current {
			c.AbortWithStatusJSON(utils.StatusClientClosedRequest, utils.ErrorResponse{Error: "Superseded by a newer request"})
			return
		}
		c.Header("X-Total-Count", strconv.Itoa(page.Total))
		c.JSON(http.StatusOK, page)
	}
}

// Forward relays a create, read, update, delete or record action verbatim.
func (h *ResourceHandler) Forward(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requireToken(c)
		if !ok {
			return
		}
		res, ok := h.Listing.Resource(resource)
		if !ok {
			utils.RespondError(c, &listing.UnknownResourceError{Name: resource})
			return
		}

		upstreamPath := res.Path
		if id := c.Param("id"); id != "" {
			upstreamPath += "/" + url.PathEscape(id)
		}
		if action := c.Param("action"); action != "" {
			if !validAction(action) {
				utils.JSONError(c, http.StatusNotFound, "Resource not found", "unsupported action "+action)
				return
			}
			upstreamPath += "/" + action
		}

		var body []byte
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodDelete {
			raw, err := c.GetRawData()
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
				return
			}
			body = raw
		}

		resp, err := h.Backend.Do(c.Request.Context(), backend.Request{
			Method:  c.Request.Method,
			Path:    upstreamPath,
			Query:   c.Request.URL.Query(),
			Token:   token,
			RawBody: body,
		})
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if !resp.OK() {
			utils.RespondError(c, backend.NewUpstreamError(resp.Status, resp.Body))
			return
		}
		if resp.Status == http.StatusNoContent || len(resp.Body) == 0 {
			c.Status(resp.Status)
			return
		}
		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(resp.Status, contentType, resp.Body)
	}
}

// validAction accepts lower-case, dash separated words such as "approve" or
// "mark-read".
func validAction(action string) bool {
	if action == "" || strings.HasPrefix(action, "-") || strings.HasSuffix(action, "-") {
		return false
	}
	for _, r := range action {
		if (r < 'a' || r > 'z') && r != '-' {
			return false
		}
	}
	return true
}
