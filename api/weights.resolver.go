package api

import (
	"errors"
	"fmt"

	"stockbuddy/internal/calculator"
	"stockbuddy/internal/domain"

	"github.com/gin-gonic/gin"
)

type rowsResponse struct {
	Rows        []domain.WeightRow `json:"rows"`
	TotalWeight int                `json:"totalWeight"`
	WeightDelta int                `json:"weightDelta"`
}

func newRowsResponse(rows []domain.WeightRow) rowsResponse {
	return rowsResponse{
		Rows:        rows,
		TotalWeight: calculator.TotalWeight(rows),
		WeightDelta: calculator.WeightDelta(rows),
	}
}

type adjustWeightRequest struct {
	Rows  []domain.WeightRow `json:"rows"`
	Index int                `json:"index"`
	Delta int                `json:"delta"`
}

type adjustWeightResponse struct {
	rowsResponse
	CanIncrement bool `json:"canIncrement"`
	CanDecrement bool `json:"canDecrement"`
}

func (m ApiHandler) adjustWeight(c *gin.Context) {
	var requestBody adjustWeightRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	rows := calculator.AdjustWeight(requestBody.Rows, requestBody.Index, requestBody.Delta)
	c.JSON(200, adjustWeightResponse{
		rowsResponse: newRowsResponse(rows),
		CanIncrement: calculator.CanAdjust(rows, requestBody.Index, 1),
		CanDecrement: calculator.CanAdjust(rows, requestBody.Index, -1),
	})
}

type setWeightRequest struct {
	Rows  []domain.WeightRow `json:"rows"`
	Index int                `json:"index"`
	Value string             `json:"value"`
}

func (m ApiHandler) setWeight(c *gin.Context) {
	var requestBody setWeightRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	rows := calculator.SetWeight(requestBody.Rows, requestBody.Index, requestBody.Value)
	c.JSON(200, newRowsResponse(rows))
}

type moveRowRequest struct {
	Rows  []domain.WeightRow `json:"rows"`
	Index int                `json:"index"`
	Up    bool               `json:"up"`
}

func (m ApiHandler) moveRow(c *gin.Context) {
	var requestBody moveRowRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	rows := calculator.MoveRow(requestBody.Rows, requestBody.Index, requestBody.Up)
	c.JSON(200, newRowsResponse(rows))
}

type removeRowRequest struct {
	Rows []domain.WeightRow `json:"rows"`
	ID   string             `json:"id"`
}

func (m ApiHandler) removeRow(c *gin.Context) {
	var requestBody removeRowRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	rows := calculator.RemoveRow(requestBody.Rows, requestBody.ID)
	c.JSON(200, newRowsResponse(rows))
}

type customPortfolioRequest struct {
	Rows []domain.WeightRow `json:"rows"`
}

type customPortfolioResponse struct {
	Allocations []domain.Allocation `json:"allocations"`
}

func (m ApiHandler) customPortfolio(c *gin.Context) {
	var requestBody customPortfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	allocations, err := calculator.PrepareCustomAllocations(requestBody.Rows)
	if errors.Is(err, calculator.ErrNoAllocations) {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to prepare allocations: %w", err), c)
		return
	}

	c.JSON(200, customPortfolioResponse{Allocations: allocations})
}
