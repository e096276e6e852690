package controller

import (
	"strconv"

	"spmtutor/internal/model"
	"spmtutor/internal/service"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController AI 导师问答
type ChatController struct {
	Service *service.ChatService
}

// AskRequest question 缺失或过短时返回兜底回答，不报错
type AskRequest struct {
	Question string `json:"question" example:"Bila nak guna however?"`
}

type ChatHistoryResponse struct {
	Messages []model.ChatMessage `json:"messages"`
}

func NewChatController(svc *service.ChatService) *ChatController {
	return &ChatController{Service: svc}
}

// Ask godoc
// @Summary 向 AI 导师提问
// @Tags AI导师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AskRequest true "问题"
// @Success 200 {object} content.ChatReply
// @Failure 429 {object} util.ErrorResponse "too_many_requests"
// @Router /chat [post]
func (ctrl *ChatController) Ask(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req AskRequest
	// 请求体不合法时按空问题处理
	_ = c.ShouldBindJSON(&req)

	reply, err := ctrl.Service.Ask(c.Request.Context(), claims.UserID, req.Question)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, reply)
}

// History godoc
// @Summary 最近的问答记录
// @Tags AI导师
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "条数，默认 20，最多 100"
// @Success 200 {object} ChatHistoryResponse
// @Router /chat/history [get]
func (ctrl *ChatController) History(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := ctrl.Service.History(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, ChatHistoryResponse{Messages: msgs})
}
