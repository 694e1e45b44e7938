package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/xiebiao/stockroom/internal/application/dashboard"
	"github.com/xiebiao/stockroom/pkg/response"
)

// DashboardHandler 看板HTTP处理器
type DashboardHandler struct {
	summaryUseCase *appdashboard.SummaryUseCase
}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler(summaryUseCase *appdashboard.SummaryUseCase) *DashboardHandler {
	return &DashboardHandler{summaryUseCase: summaryUseCase}
}

// Summary 看板汇总
// @Summary      看板汇总
// @Description  用户/库存/订单概况与最近动态，带短TTL缓存，数据可能有分钟级延迟
// @Tags         看板
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=appdashboard.Summary}
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	result, err := h.summaryUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
