package workflow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/interfaces/http/middleware"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/logger"
	"github.com/caseguard/caseguard/internal/shared/utils"
)

type RuleHandler struct {
	createRuleUC     usecases.CreateRuleExecutor
	updateRuleUC     usecases.UpdateRuleExecutor
	setRuleEnabledUC usecases.SetRuleEnabledExecutor
	listRulesUC      usecases.ListRulesExecutor
	logger           logger.Interface
}

func NewRuleHandler(
	createRuleUC usecases.CreateRuleExecutor,
	updateRuleUC usecases.UpdateRuleExecutor,
	setRuleEnabledUC usecases.SetRuleEnabledExecutor,
	listRulesUC usecases.ListRulesExecutor,
	logger logger.Interface,
) *RuleHandler {
	return &RuleHandler{
		createRuleUC:     createRuleUC,
		updateRuleUC:     updateRuleUC,
		setRuleEnabledUC: setRuleEnabledUC,
		listRulesUC:      listRulesUC,
		logger:           logger,
	}
}

// ListRules handles GET /rules
//
//	@Summary		List assignment rules
//	@Tags			rules
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Param			enabled_only		query	bool	false	"Only enabled rules"
//	@Success		200	{object}	utils.APIResponse	"Rules in evaluation order"
//	@Failure		400	{object}	utils.APIResponse	"Invalid filter"
//	@Router			/rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	enabledOnly, err := parseEnabledOnly(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listRulesUC.Execute(c.Request.Context(), usecases.ListRulesQuery{
		OrganizationID: orgID,
		EnabledOnly:    enabledOnly,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateRule handles POST /rules
//
//	@Summary		Create an assignment rule
//	@Tags			rules
//	@Accept			json
//	@Produce		json
//	@Param			X-Organization-ID	header	string				true	"Requesting organization"
//	@Param			rule				body	CreateRuleRequest	true	"Rule"
//	@Success		201	{object}	utils.APIResponse	"Rule created"
//	@Failure		400	{object}	utils.APIResponse	"Validation error"
//	@Router			/rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create rule", "error", err)
		utils.ErrorResponseWithError(c, bindError(err))
		return
	}

	result, err := h.createRuleUC.Execute(c.Request.Context(), req.ToCommand(orgID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Assignment rule created successfully")
}

// UpdateRule handles PUT /rules/:id
//
//	@Summary		Replace an assignment rule
//	@Tags			rules
//	@Accept			json
//	@Produce		json
//	@Param			X-Organization-ID	header	string		true	"Requesting organization"
//	@Param			id					path	string		true	"Rule ID"
//	@Param			rule				body	RuleRequest	true	"Rule"
//	@Success		200	{object}	utils.APIResponse	"Rule updated"
//	@Failure		404	{object}	utils.APIResponse	"Rule not found"
//	@Router			/rules/{id} [put]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ruleID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update rule", "rule_id", ruleID, "error", err)
		utils.ErrorResponseWithError(c, bindError(err))
		return
	}

	result, err := h.updateRuleUC.Execute(c.Request.Context(), req.ToCommand(orgID, ruleID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment rule updated successfully", result)
}

// EnableRule handles POST /rules/:id/enable
//
//	@Summary		Enable an assignment rule
//	@Tags			rules
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Param			id					path	string	true	"Rule ID"
//	@Success		200	{object}	utils.APIResponse	"Rule enabled"
//	@Failure		404	{object}	utils.APIResponse	"Rule not found"
//	@Router			/rules/{id}/enable [post]
func (h *RuleHandler) EnableRule(c *gin.Context) {
	h.setEnabled(c, true)
}

// DisableRule handles POST /rules/:id/disable
//
//	@Summary		Disable an assignment rule
//	@Tags			rules
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Param			id					path	string	true	"Rule ID"
//	@Success		200	{object}	utils.APIResponse	"Rule disabled"
//	@Failure		404	{object}	utils.APIResponse	"Rule not found"
//	@Router			/rules/{id}/disable [post]
func (h *RuleHandler) DisableRule(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *RuleHandler) setEnabled(c *gin.Context, enabled bool) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ruleID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setRuleEnabledUC.Execute(c.Request.Context(), usecases.SetRuleEnabledCommand{
		OrganizationID: orgID,
		RuleID:         ruleID,
		Enabled:        enabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Assignment rule disabled"
	if enabled {
		message = "Assignment rule enabled"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

func requireOrganization(c *gin.Context) (string, error) {
	orgID, ok := middleware.OrganizationID(c)
	if !ok {
		return "", errors.NewBadRequestError("X-Organization-ID header is required")
	}
	return orgID, nil
}
