package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"trend-fetch/internal/trend_fetch/cache"
	"trend-fetch/internal/trend_fetch/model"
	"trend-fetch/internal/trend_fetch/processor"
	"trend-fetch/internal/trend_fetch/store"
)

// Server owns the HTTP surface. Handlers stay thin: bind input, call the
// fetcher/store, map typed errors to status codes.
type Server struct {
	Log       *zap.Logger
	Fetcher   *processor.Fetcher
	Trends    *store.Trends
	Instagram *store.Instagram
	Cache     *cache.TrendCache
	Metrics   *processor.Metrics
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	t := r.Group("/api/trends")
	t.GET("", s.ingestTrends)
	t.GET("/db", s.listTrends)
	t.PUT("/:id", s.updateTrend)
	t.DELETE("/:id", s.deleteTrend)
	t.POST("/bulk-delete", s.bulkDeleteTrends)

	ig := r.Group("/api/instagram-trends")
	ig.POST("", s.createInstagramTrend)
	ig.GET("", s.listInstagramTrends)
	ig.GET("/:id", s.getInstagramTrend)
	ig.PUT("/:id", s.updateInstagramTrend)
	ig.DELETE("/:id", s.deleteInstagramTrend)

	return r
}

// ingestTrends fetches trending videos for a category, stores them, and
// returns the stored records.
func (s *Server) ingestTrends(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.DefaultQuery("category", "gaming")

	videos, hit, err := s.Cache.GetOrFetch(ctx, category, func() ([]model.Video, error) {
		return s.Fetcher.FetchTrendingVideos(ctx, category)
	})
	if hit {
		s.Metrics.IncCacheHit()
	} else {
		s.Metrics.IncCacheMiss()
	}
	if err != nil {
		s.writeFetchError(c, err)
		return
	}

	trends, err := s.Trends.InsertFromVideos(ctx, videos, "YouTube")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    trends,
		"count":   len(trends),
	})
}

func (s *Server) listTrends(c *gin.Context) {
	trends, err := s.Trends.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trends})
}

func (s *Server) updateTrend(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no update data provided"})
		return
	}

	updated, err := s.Trends.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "trend updated successfully",
		"data":    updated,
	})
}

func (s *Server) deleteTrend(c *gin.Context) {
	id := c.Param("id")
	if err := s.Trends.Delete(c.Request.Context(), id); err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "trend deleted successfully",
		"deleted_id": id,
	})
}

func (s *Server) bulkDeleteTrends(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no trend ids provided"})
		return
	}
	raw, exists := body["trend_ids"]
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no trend ids provided"})
		return
	}
	list, isList := raw.([]any)
	if !isList {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "trend_ids must be an array"})
		return
	}

	ids := make([]string, len(list))
	for i, v := range list {
		ids[i] = processor.Stringify(v)
	}

	deleted, targeted, err := s.Trends.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		var invalid *store.InvalidIDsError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":     false,
				"message":     "invalid trend id format",
				"invalid_ids": invalid.IDs,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "trends deleted successfully",
		"deleted_count": deleted,
		"deleted_ids":   targeted,
	})
}

func (s *Server) createInstagramTrend(c *gin.Context) {
	var body struct {
		Hashtag string `json:"hashtag"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Hashtag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "hashtag is required"})
		return
	}

	hashtag := model.NormalizeHashtag(body.Hashtag)
	data, err := s.Fetcher.FetchInstagramData(c.Request.Context(), "instagram "+hashtag+" trending")
	if err != nil {
		s.writeFetchError(c, err)
		return
	}

	trend, err := s.Instagram.Create(c.Request.Context(), hashtag, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "instagram trend created successfully",
		"trend":   trend,
	})
}

func (s *Server) listInstagramTrends(c *gin.Context) {
	trends, err := s.Instagram.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trends})
}

func (s *Server) getInstagramTrend(c *gin.Context) {
	trend, err := s.Instagram.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trend})
}

func (s *Server) updateInstagramTrend(c *gin.Context) {
	var body struct {
		Hashtag string `json:"hashtag"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Hashtag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "hashtag not provided"})
		return
	}

	// Hashtag normalization is identical on create and update.
	hashtag := model.NormalizeHashtag(body.Hashtag)
	data, err := s.Fetcher.FetchInstagramData(c.Request.Context(), "instagram "+hashtag+" trending")
	if err != nil {
		s.writeFetchError(c, err)
		return
	}

	trend, err := s.Instagram.Update(c.Request.Context(), c.Param("id"), hashtag, data)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "instagram trend updated successfully",
		"trend":   trend,
	})
}

func (s *Server) deleteInstagramTrend(c *gin.Context) {
	if err := s.Instagram.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "instagram trend deleted successfully"})
}

// writeFetchError maps typed upstream failures to transport status codes.
func (s *Server) writeFetchError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, processor.ErrRequestTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, processor.ErrNoVideos), errors.Is(err, processor.ErrNoValidVideos):
		status = http.StatusNotFound
	}
	s.Log.Warn("upstream fetch failed", zap.Error(err))
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

// writeStoreError maps typed store failures to transport status codes.
func (s *Server) writeStoreError(c *gin.Context, err error) {
	var invalid *store.InvalidIDsError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid trend id format"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, store.ErrNoChanges),
		errors.Is(err, store.ErrInvalidMetrics),
		errors.Is(err, store.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		s.Log.Error("store operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}
