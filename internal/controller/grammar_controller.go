package controller

import (
	"spmtutor/internal/service"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
)

type GrammarController struct {
	Service *service.GrammarService
}

func NewGrammarController(svc *service.GrammarService) *GrammarController {
	return &GrammarController{Service: svc}
}

// Start godoc
// @Summary 开始或继续今日语法填空
// @Tags 语法
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.GrammarQuestionResult
// @Success 200 {object} service.GrammarFinishedResult
// @Router /grammar/start [post]
func (ctrl *GrammarController) Start(c *gin.Context) {
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
// @Summary 语法填空操作
// @Description action 为 answer_option、submit_rewrite 或 next_question
// @Tags 语法
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.GrammarNextRequest true "操作"
// @Success 200 {object} service.GrammarOptionResult
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse "session_not_found"
// @Failure 409 {object} util.ErrorResponse "concurrent_update"
// @Router /grammar/next [post]
func (ctrl *GrammarController) Next(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.GrammarNextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.HandleError(c, util.ErrMissingFields)
		return
	}

	result, err := ctrl.Service.Next(c.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}
