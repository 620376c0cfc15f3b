package api

import (
	"fmt"

	"stockbuddy/internal/calculator"
	"stockbuddy/internal/domain"

	"github.com/gin-gonic/gin"
)

type metricsRequest struct {
	Payload         *domain.PerformancePayload `json:"payload"`
	InflationAdjust bool                       `json:"inflationAdjust"`
	FallbackPolicy  domain.DistributionPolicy  `json:"fallbackPolicy"`
}

// metrics answers null when there is no payload to derive from
func (m ApiHandler) metrics(c *gin.Context) {
	var requestBody metricsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	policy := requestBody.FallbackPolicy
	if !policy.IsValid() {
		policy = domain.DistributionPolicy_Reinvest
	}

	out := calculator.ComputeMetrics(requestBody.Payload, requestBody.InflationAdjust, policy)
	c.JSON(200, out)
}
