package api

import (
	"fmt"

	"stockbuddy/internal/calculator"

	"github.com/gin-gonic/gin"
)

type rebalanceRequest struct {
	Weights []float64 `json:"weights"`
	Index   int       `json:"index"`
	Value   float64   `json:"value"`
}

type weightsResponse struct {
	Weights []int `json:"weights"`
}

func (m ApiHandler) rebalance(c *gin.Context) {
	var requestBody rebalanceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	out := calculator.RebalanceTopDown(requestBody.Weights, requestBody.Index, requestBody.Value)
	c.JSON(200, weightsResponse{Weights: out})
}

type normalizeRequest struct {
	Weights   []float64 `json:"weights"`
	LockIndex *int      `json:"lockIndex"`
	Target    *int      `json:"target"`
}

func (m ApiHandler) normalize(c *gin.Context) {
	var requestBody normalizeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	target := 100
	if requestBody.Target != nil {
		target = *requestBody.Target
	}

	out := calculator.NormalisePercentages(requestBody.Weights, requestBody.LockIndex, target)
	c.JSON(200, weightsResponse{Weights: out})
}
