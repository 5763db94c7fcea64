package transport

import (
	"errors"
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
	"github.com/researchhub/researchhub-service/internal/service"
)

// NewServer wires routes and returns a configured gin.Engine. Every route
// except the health check requires the bearer API token.
func NewServer(svc *service.Service, apiToken string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	h := handler{svc: svc}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/", bearerAuth(apiToken))

	candidates := api.Group("/candidates")
	{
		candidates.GET("", h.listCandidates)
		candidates.GET("/:id", h.getCandidate)
		candidates.POST("", h.createCandidate)
		candidates.PUT("/:id", h.updateCandidate)
		candidates.DELETE("/:id", h.deleteCandidate)
	}

	sessions := api.Group("/sessions")
	{
		sessions.GET("", h.listSessions)
		sessions.GET("/:id", h.getSession)
		sessions.POST("", h.createSession)
		sessions.PUT("/:id", h.updateSession)
	}

	insights := api.Group("/insights")
	{
		insights.GET("", h.listInsights)
		insights.POST("", h.createInsight)
		insights.PUT("/:id", h.updateInsight)
	}

	recordings := api.Group("/recordings")
	{
		recordings.GET("", h.listRecordings)
		recordings.POST("", h.createRecording)
	}

	users := api.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.PUT("/:id", h.updateUser)
	}

	api.GET("/activity", h.listActivity)
	api.GET("/departments", h.listDepartments)
	api.GET("/teams", h.listTeams)
	api.GET("/dashboard/stats", h.dashboardStats)

	return engine
}

func bearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		credential, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || credential != token {
			respondError(c, domain.NewUnauthorizedError("invalid or missing bearer token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

type handler struct {
	svc *service.Service
}

func (h handler) listCandidates(c *gin.Context) {
	candidates, err := h.svc.ListCandidates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(candidates))
}

func (h handler) getCandidate(c *gin.Context) {
	candidate, err := h.svc.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, candidate)
}

func (h handler) createCandidate(c *gin.Context) {
	var p record.RawCandidatePatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	candidate, err := h.svc.CreateCandidate(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, candidate)
}

func (h handler) updateCandidate(c *gin.Context) {
	var p record.RawCandidatePatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	candidate, err := h.svc.UpdateCandidate(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, candidate)
}

func (h handler) deleteCandidate(c *gin.Context) {
	if err := h.svc.DeleteCandidate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"success": true})
}

func (h handler) listSessions(c *gin.Context) {
	sessions, err := h.svc.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(sessions))
}

func (h handler) getSession(c *gin.Context) {
	session, err := h.svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, session)
}

func (h handler) createSession(c *gin.Context) {
	var p record.RawSessionPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	session, err := h.svc.CreateSession(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, session)
}

func (h handler) updateSession(c *gin.Context) {
	var p record.RawSessionPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	session, err := h.svc.UpdateSession(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, session)
}

func (h handler) listInsights(c *gin.Context) {
	insights, err := h.svc.ListInsights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(insights))
}

func (h handler) createInsight(c *gin.Context) {
	var p record.RawInsightPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	insight, err := h.svc.CreateInsight(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, insight)
}

func (h handler) updateInsight(c *gin.Context) {
	var p record.RawInsightPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	insight, err := h.svc.UpdateInsight(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, insight)
}

func (h handler) listRecordings(c *gin.Context) {
	recordings, err := h.svc.ListRecordings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(recordings))
}

func (h handler) createRecording(c *gin.Context) {
	var p record.RawRecordingPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	recording, err := h.svc.CreateRecording(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, recording)
}

func (h handler) listUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(users))
}

func (h handler) createUser(c *gin.Context) {
	var p record.RawUserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, user)
}

func (h handler) updateUser(c *gin.Context) {
	var p record.RawUserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, user)
}

func (h handler) listActivity(c *gin.Context) {
	activity, err := h.svc.ListActivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(activity))
}

func (h handler) listDepartments(c *gin.Context) {
	departments, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(departments))
}

func (h handler) listTeams(c *gin.Context) {
	teams, err := h.svc.ListTeams(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, emptyIfNil(teams))
}

func (h handler) dashboardStats(c *gin.Context) {
	stats, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, stats)
}

// emptyIfNil keeps list responses as [] rather than null.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func respondValidationError(c *gin.Context, err error) {
	writeError(c, nethttp.StatusBadRequest, domain.ErrCodeValidation, err.Error())
}

func respondError(c *gin.Context, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		appErr = domain.NewInternalError(err)
	}
	writeError(c, appErr.Status, appErr.Code, appErr.Message)
}

// writeError emits a flat error body so clients can read the message from
// the top-level "error" field.
func writeError(c *gin.Context, status int, code domain.ErrorCode, message string) {
	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
