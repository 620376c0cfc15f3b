package api

import (
	"fmt"

	"stockbuddy/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type runScenarioRequest struct {
	UserID uuid.UUID            `json:"userID"`
	Draft  domain.ScenarioDraft `json:"draft"`
}

func (m ApiHandler) runScenario(c *gin.Context) {
	var requestBody runScenarioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	session, err := m.ProjectionService.RunScenario(c.Request.Context(), userID, requestBody.Draft)
	writeSession(c, session, err)
}

func (m ApiHandler) resetScenario(c *gin.Context) {
	var requestBody userRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	session, err := m.ProjectionService.ResetScenario(c.Request.Context(), userID)
	writeSession(c, session, err)
}

func (m ApiHandler) applyScenario(c *gin.Context) {
	var requestBody userRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	session, err := m.ProjectionService.ApplyScenarioToPlan(c.Request.Context(), userID)
	writeSession(c, session, err)
}
