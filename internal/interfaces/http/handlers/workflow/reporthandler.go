package workflow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/shared/logger"
	"github.com/caseguard/caseguard/internal/shared/utils"
)

// ReportHandler serves the read side of a report's workflow history.
type ReportHandler struct {
	listLogsUC        usecases.ListWorkflowLogsExecutor
	listEscalationsUC usecases.ListEscalationsExecutor
	logger            logger.Interface
}

func NewReportHandler(
	listLogsUC usecases.ListWorkflowLogsExecutor,
	listEscalationsUC usecases.ListEscalationsExecutor,
	logger logger.Interface,
) *ReportHandler {
	return &ReportHandler{
		listLogsUC:        listLogsUC,
		listEscalationsUC: listEscalationsUC,
		logger:            logger,
	}
}

// ListLogs handles GET /reports/:id/logs
//
//	@Summary		List a report's workflow log
//	@Tags			reports
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Param			id					path	string	true	"Report ID"
//	@Param			action				query	string	false	"Filter by action"
//	@Param			page				query	int		false	"Page number"
//	@Param			page_size			query	int		false	"Page size"
//	@Success		200	{object}	utils.APIResponse	"Log entries, oldest first"
//	@Router			/reports/{id}/logs [get]
func (h *ReportHandler) ListLogs(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	reportID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listLogsUC.Execute(c.Request.Context(), parseListLogsQuery(c, orgID, reportID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Entries, result.Total, result.Page, result.PageSize)
}

// ListEscalations handles GET /reports/:id/escalations
//
//	@Summary		List a report's escalations
//	@Tags			reports
//	@Produce		json
//	@Param			X-Organization-ID	header	string	true	"Requesting organization"
//	@Param			id					path	string	true	"Report ID"
//	@Success		200	{object}	utils.APIResponse	"Escalations, oldest first"
//	@Router			/reports/{id}/escalations [get]
func (h *ReportHandler) ListEscalations(c *gin.Context) {
	orgID, err := requireOrganization(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	reportID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listEscalationsUC.Execute(c.Request.Context(), usecases.ListEscalationsQuery{
		OrganizationID: orgID,
		ReportID:       reportID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
