package controller

import (
	"spmtutor/internal/service"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
)

type WeeklyController struct {
	Service *service.WeeklyService
}

type SubmitCheckpointRequest struct {
	CheckpointID  string `json:"checkpoint_id" binding:"required"`
	StudentAnswer string `json:"student_answer"`
}

func NewWeeklyController(svc *service.WeeklyService) *WeeklyController {
	return &WeeklyController{Service: svc}
}

// Start godoc
// @Summary 获取今日周检查点题目
// @Tags 周检查点
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.WeeklyResult
// @Failure 502 {object} util.ErrorResponse "generation_failed"
// @Router /weekly/start [post]
func (ctrl *WeeklyController) Start(c *gin.Context) {
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

// Submit godoc
// @Summary 提交周检查点作答
// @Tags 周检查点
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SubmitCheckpointRequest true "作答"
// @Success 200 {object} service.WeeklyResult
// @Failure 400 {object} util.ErrorResponse "missing_fields / checkpoint_submitted"
// @Failure 404 {object} util.ErrorResponse "checkpoint_not_found"
// @Router /weekly/submit [post]
func (ctrl *WeeklyController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req SubmitCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.HandleError(c, util.ErrMissingFields)
		return
	}

	result, err := ctrl.Service.Submit(c.Request.Context(), claims.UserID, req.CheckpointID, req.StudentAnswer)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}
