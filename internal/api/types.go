package api

import "github.com/gin-gonic/gin"

// ErrorResponse is the uniform error body every handler returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func badRequest(c *gin.Context, message string) {
	c.JSON(400, ErrorResponse{Error: "validation_error", Message: message})
}

func serverError(c *gin.Context, kind, message string) {
	c.JSON(500, ErrorResponse{Error: kind, Message: message})
}

// assignmentDTO is the wire shape of one role/champion pick.
type assignmentDTO struct {
	Role     string `json:"role" binding:"required"`
	Champion string `json:"champion" binding:"required"`
	Player   string `json:"player"`
}

// evaluateRequest is the body of POST /api/v1/draft/evaluate.
type evaluateRequest struct {
	Team  []assignmentDTO `json:"team" binding:"required"`
	Enemy []assignmentDTO `json:"enemy" binding:"required"`
}

// suggestRequest is the body of POST /api/v1/draft/suggest.
type suggestRequest struct {
	Team  []assignmentDTO `json:"team"`
	Enemy []assignmentDTO `json:"enemy"`
	Stage string          `json:"stage" binding:"required"`
}

// precomputeRequest is the body of POST /api/v1/precompute.
type precomputeRequest struct {
	DatasetName string `json:"datasetName" binding:"required"`
	Patch       string `json:"patch" binding:"required"`
}
