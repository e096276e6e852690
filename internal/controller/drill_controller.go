package controller

import (
	"spmtutor/internal/drill"
	"spmtutor/internal/service"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
)

// DrillController 每日写作与词汇练习共用，按 Service.Kind 区分
type DrillController struct {
	Service *service.DrillService
}

// NextStepRequest 提交当前步骤的作答
type NextStepRequest struct {
	SessionID     string `json:"session_id" binding:"required" example:"6f1c2d3e-..."`
	Step          string `json:"step" binding:"required" example:"core_drill"`
	StudentAnswer string `json:"student_answer" example:"Technology helps students revise faster."`
}

func NewDrillController(svc *service.DrillService) *DrillController {
	return &DrillController{Service: svc}
}

// Start godoc
// @Summary 开始或继续今日练习
// @Description 返回今日 session 的当前步骤；已有待作答内容时原样返回
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.StepResult
// @Failure 401 {object} util.ErrorResponse
// @Failure 502 {object} util.ErrorResponse "generation_failed"
// @Router /training/start [post]
// @Router /vocab/start [post]
func (ctrl *DrillController) Start(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	result, err := ctrl.Service.Start(c.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}

// Next godoc
// @Summary 提交作答并进入下一步
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body NextStepRequest true "当前步骤作答"
// @Success 200 {object} service.StepResult
// @Failure 400 {object} util.ErrorResponse "missing_fields / step_mismatch / invalid_state"
// @Failure 404 {object} util.ErrorResponse "session_not_found"
// @Failure 502 {object} util.ErrorResponse "generation_failed"
// @Router /training/next [post]
// @Router /vocab/next [post]
func (ctrl *DrillController) Next(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req NextStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.HandleError(c, util.ErrMissingFields)
		return
	}

	result, err := ctrl.Service.Advance(c.Request.Context(), claims.UserID, req.SessionID, drill.Step(req.Step), req.StudentAnswer)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}
