package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"stockbuddy/internal/db/models/postgres/public/model"
	"stockbuddy/internal/domain"
	"stockbuddy/internal/logger"
	"stockbuddy/internal/repository"
	"stockbuddy/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	// Db is nil when running without postgres; request logging is
	// skipped in that case
	Db                         *sql.DB
	ProjectionService          service.ProjectionService
	PerformanceCacheRepository repository.PerformanceCacheRepository
	ApiRequestRepository       repository.ApiRequestRepository
	LatencyTrackingRepository  repository.LatencyTrackingRepository
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stockbuddy"})
	})

	router.POST("/rebalance", m.rebalance)
	router.POST("/normalize", m.normalize)
	router.POST("/adjustWeight", m.adjustWeight)
	router.POST("/setWeight", m.setWeight)
	router.POST("/moveRow", m.moveRow)
	router.POST("/removeRow", m.removeRow)
	router.POST("/customPortfolio", m.customPortfolio)
	router.POST("/metrics", m.metrics)

	router.POST("/holdings", m.loadHoldings)
	router.POST("/customRows", m.updateCustomRows)
	router.POST("/customRows/baseline", m.loadBaselineRows)
	router.POST("/projection", m.projection)
	router.GET("/projection/:userID/export", m.exportProjection)
	router.GET("/annualisedReturns/:userID", m.annualisedReturns)

	router.POST("/scenario/run", m.runScenario)
	router.POST("/scenario/reset", m.resetScenario)
	router.POST("/scenario/apply", m.applyScenario)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorw("request failed", "status", code, "error", err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// logRequestMiddleware attaches a request scoped logger and profile to
// the request context and, when a database is configured, records the
// request, its response and its span timings
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.New()
	log := logger.FromContext(ctx.Request.Context()).With(
		"requestID", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	profile, endProfile := domain.NewProfile()

	c := logger.WithLogger(ctx.Request.Context(), log)
	c = domain.WithProfile(c, profile)
	ctx.Request = ctx.Request.WithContext(c)

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Warnw("failed to get raw data", "error", err)
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	type userIdBody struct {
		UserID uuid.UUID `json:"userID"`
	}
	var userID *uuid.UUID
	reqBody := userIdBody{}
	if len(body) > 0 && json.Unmarshal(body, &reqBody) == nil && reqBody.UserID != uuid.Nil {
		userID = &reqBody.UserID
	}

	start := time.Now().UTC()
	var req *model.APIRequest
	if m.Db != nil && m.ApiRequestRepository != nil {
		req, err = m.ApiRequestRepository.Add(m.Db, model.APIRequest{
			RequestID:   requestID,
			UserID:      userID,
			IPAddress:   strPtr(ctx.ClientIP()),
			Method:      ctx.Request.Method,
			Route:       ctx.Request.URL.Path,
			RequestBody: strPtr(string(body)),
			StartTs:     start,
		})
		if err != nil {
			log.Warnw("failed to record api request", "error", err)
		}
	}

	ctx.Next()

	endProfile()
	elapsed := time.Since(start).Milliseconds()
	log.Infow("handled request", "status", ctx.Writer.Status(), "elapsedMs", elapsed)

	if req != nil {
		req.DurationMs = int64Ptr(elapsed)
		req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())

		if err := m.ApiRequestRepository.Update(m.Db, *req); err != nil {
			log.Warnw("failed to update api request", "error", err)
		}
		if m.LatencyTrackingRepository != nil && len(profile.Spans) > 0 {
			if err := m.LatencyTrackingRepository.Add(profile, &req.RequestID); err != nil {
				log.Warnw("failed to record latency", "error", err)
			}
		}
	}
}
