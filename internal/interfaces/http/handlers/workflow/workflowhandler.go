package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/interfaces/http/middleware"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// Engine is the request/response boundary the workflow endpoint drives.
type Engine interface {
	Handle(ctx context.Context, req dto.WorkflowEngineRequest) dto.WorkflowEngineResponse
}

// WorkflowHandler exposes the engine over HTTP. Responses use the engine's
// own JSON shape rather than the API envelope so dashboard callers see
// success, assigned_to, sla_deadline and error exactly as the engine
// produced them.
type WorkflowHandler struct {
	engine Engine
	logger logger.Interface
}

func NewWorkflowHandler(engine Engine, logger logger.Interface) *WorkflowHandler {
	return &WorkflowHandler{engine: engine, logger: logger}
}

// HandleWorkflow handles POST /workflow
//
//	@Summary		Drive the workflow engine
//	@Description	Runs one engine action. Engine failures are reported with success=false and HTTP 200.
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			X-Organization-ID	header		string					true	"Requesting organization"
//	@Param			request			body		dto.WorkflowEngineRequest	true	"Engine request"
//	@Success		200	{object}	dto.WorkflowEngineResponse	"Engine response"
//	@Failure		400	{object}	dto.WorkflowEngineResponse	"Malformed or invalid request"
//	@Failure		403	{object}	dto.WorkflowEngineResponse	"Organization mismatch"
//	@Router			/workflow [post]
func (h *WorkflowHandler) HandleWorkflow(c *gin.Context) {
	// Decoded without binding: organizationId is required, but may come
	// from the request header, so validation runs after it is filled in.
	var req dto.WorkflowEngineRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		h.logger.Warnw("invalid request body for workflow", "error", err)
		h.reject(c, http.StatusBadRequest, "invalid request body")
		return
	}

	orgID, ok := middleware.OrganizationID(c)
	if ok {
		body := strings.TrimSpace(req.OrganizationID)
		switch {
		case body == "":
			req.OrganizationID = orgID
		case body != orgID:
			h.logger.Warnw("workflow request organization mismatch",
				"header_organization_id", orgID,
				"body_organization_id", body,
				"report_id", req.ReportID)
			h.reject(c, http.StatusForbidden, "organizationId does not match the requesting organization")
			return
		}
	}

	if err := binding.Validator.ValidateStruct(&req); err != nil {
		h.logger.Warnw("workflow request failed validation", "error", err)
		h.reject(c, http.StatusBadRequest, err.Error())
		return
	}

	resp := h.engine.Handle(c.Request.Context(), req)
	if !resp.Success {
		h.logger.Debugw("workflow request failed",
			"action", req.Action,
			"report_id", req.ReportID,
			"error", resp.Error,
			"retryable", resp.Retryable)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkflowHandler) reject(c *gin.Context, status int, message string) {
	c.JSON(status, dto.WorkflowEngineResponse{Success: false, Error: message})
}
