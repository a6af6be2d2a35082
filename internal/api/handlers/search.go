package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ayash-Bera/propsearch/internal/cache"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/services"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

const maxQueryLength = 2000

type SearchHandler struct {
	assistant *services.Assistant
	store     cache.Store
	sessions  *SessionStore
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewSearchHandler(
	assistant *services.Assistant,
	store cache.Store,
	sessions *SessionStore,
	timeout time.Duration,
	logger *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{
		assistant: assistant,
		store:     store,
		sessions:  sessions,
		timeout:   timeout,
		logger:    logger,
	}
}

func (h *SearchHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// HandleSearch runs a structured search from query-string filters.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var params models.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	filters := params.Filters()
	if err := filters.Validate(); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.assistant.Execute(ctx, filters, params.Page, params.Limit)
	if err != nil {
		h.respondError(c, "Search failed", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"filters": filters.Values().Encode(),
		"results": len(result.Listings),
		"cached":  result.Cached,
	}).Info("Search completed")

	utils.SuccessResponse(c, http.StatusOK, "Search completed", result)
}

// HandleParse returns the parse of a free-text query without searching.
func (h *SearchHandler) HandleParse(c *gin.Context) {
	query, ok := h.bindQuery(c, nil)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	utils.SuccessResponse(c, http.StatusOK, "Query parsed", h.assistant.ParseAndResolve(ctx, query))
}

// HandleAsk answers a free-text query within the caller's session.
func (h *SearchHandler) HandleAsk(c *gin.Context) {
	var req models.QueryRequest
	query, ok := h.bindQuery(c, &req)
	if !ok {
		return
	}

	id := sessionID(c)
	c.Header(SessionHeader, id)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.assistant.Ask(ctx, h.sessions.Get(id), query, req.Page, req.Limit)
	if err != nil {
		h.respondError(c, "Failed to answer query", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Query answered", resp)
}

// HandleCacheStats reports query cache occupancy.
func (h *SearchHandler) HandleCacheStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to read cache stats")
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Cache unavailable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Cache stats retrieved", stats)
}

func (h *SearchHandler) bindQuery(c *gin.Context, req *models.QueryRequest) (string, bool) {
	if req == nil {
		req = &models.QueryRequest{}
	}
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return "", false
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query cannot be empty", nil)
		return "", false
	}
	if len(query) > maxQueryLength {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query too long (max 2000 characters)", nil)
		return "", false
	}
	return query, true
}

func (h *SearchHandler) respondError(c *gin.Context, message string, err error) {
	if errors.Is(err, services.ErrInvalidPaging) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid paging", err)
		return
	}
	h.logger.WithError(err).Error(message)
	utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
}
