package workflow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/shared/logger"
	"github.com/caseguard/caseguard/internal/shared/utils"
)

type PolicyHandler struct {
	createPolicyUC     usecases.CreatePolicyExecutor
	updatePolicyUC     usecases.UpdatePolicyExecutor
	setDefaultPolicyUC usecases.SetDefaultPolicyExecutor
	listPoliciesUC     usecases.ListPoliciesExecutor
	logger             logger.Interface
}

func NewPolicyHandler(
	createPolicyUC usecases.CreatePolicyExecutor,
	updatePolicyUC usecases.UpdatePolicyExecutor,
	setDefaultPolicyUC usecases.SetDefaultPolicyExecutor,
	listPoliciesUC usecases.ListPoliciesExecutor,
	logger logger.Interface,
) *PolicyHandler {
	return &PolicyHandler{
		createPolicyUC:     createPolicyUC,
		updatePolicyUC:     updatePolicyUC,
		setDefaultPolicyUC: setDefaultPolicyUC,
		listPoliciesUC:     listPoliciesUC,
		logger:             logger,
	}
}

// ListPolicies handles GET /sla-policies
//
//	@Summary		List SLA policies
//	@Tags			sla-policies
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Success		200	{object}	utils.APIResponse	"Policies"
//	@Router			/sla-policies [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listPoliciesUC.Execute(c.Request.Context(), usecases.ListPoliciesQuery{OrganizationID: orgID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreatePolicy handles POST /sla-policies
//
//	@Summary		Create an SLA policy
//	@Tags			sla-policies
//	@Accept			json
//	@Produce		json
//	@Param			X-Organization-ID	header	string				true	"Requesting organization"
//	@Param			policy				body	CreatePolicyRequest	true	"Policy"
//	@Success		201	{object}	utils.APIResponse	"Policy created"
//	@Failure		400	{object}	utils.APIResponse	"Validation error"
//	@Router			/sla-policies [post]
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create SLA policy", "error", err)
		utils.ErrorResponseWithError(c, bindError(err))
		return
	}

	result, err := h.createPolicyUC.Execute(c.Request.Context(), req.ToCommand(orgID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "SLA policy created successfully")
}

// UpdatePolicy handles PUT /sla-policies/:id
//
//	@Summary		Replace an SLA policy
//	@Tags			sla-policies
//	@Accept			json
//	@Produce		json
//	@Param			X-Organization-ID	header	string			true	"Requesting organization"
//	@Param			id					path	string			true	"Policy ID"
//	@Param			policy				body	PolicyRequest	true	"Policy"
//	@Success		200	{object}	utils.APIResponse	"Policy updated"
//	@Failure		404	{object}	utils.APIResponse	"Policy not found"
//	@Router			/sla-policies/{id} [put]
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	policyID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update SLA policy", "policy_id", policyID, "error", err)
		utils.ErrorResponseWithError(c, bindError(err))
		return
	}

	result, err := h.updatePolicyUC.Execute(c.Request.Context(), req.ToCommand(orgID, policyID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SLA policy updated successfully", result)
}

// SetDefaultPolicy handles POST /sla-policies/:id/default
//
//	@Summary		Make a policy the organization default
//	@Tags			sla-policies
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Param			id					path	string	true	"Policy ID"
//	@Success		200	{object}	utils.APIResponse	"Default changed"
//	@Failure		404	{object}	utils.APIResponse	"Policy not found"
//	@Router			/sla-policies/{id}/default [post]
func (h *PolicyHandler) SetDefaultPolicy(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	policyID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setDefaultPolicyUC.Execute(c.Request.Context(), usecases.SetDefaultPolicyCommand{
		OrganizationID: orgID,
		PolicyID:       policyID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SLA policy set as default", result)
}
