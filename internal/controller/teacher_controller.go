package controller

import (
	"spmtutor/internal/service"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	Service *service.TeacherService
}

type ResetStudentRequest struct {
	UserID uint `json:"user_id" binding:"required" example:"42"`
}

type RosterResponse struct {
	Students []service.StudentProgress `json:"students"`
}

func NewTeacherController(svc *service.TeacherService) *TeacherController {
	return &TeacherController{Service: svc}
}

// ResetStudent godoc
// @Summary 清空学生的练习记录
// @Description 删除学生的全部练习、语法、周检查点与问答记录，账号保留
// @Tags 教师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ResetStudentRequest true "学生 ID"
// @Success 200 {object} util.OKResponse
// @Failure 400 {object} util.ErrorResponse "missing_user_id"
// @Failure 403 {object} util.ErrorResponse "forbidden"
// @Failure 500 {object} util.ErrorResponse "reset_failed"
// @Router /teacher/reset-student [post]
func (ctrl *TeacherController) ResetStudent(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req ResetStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.HandleError(c, util.ErrMissingUserID)
		return
	}

	if err := ctrl.Service.ResetStudent(c.Request.Context(), claims.UserID, claims.Role, req.UserID); err != nil {
		util.HandleError(c, err)
		return
	}
	util.OK(c)
}

// Students godoc
// @Summary 名下学生的练习完成情况
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RosterResponse
// @Router /teacher/students [get]
func (ctrl *TeacherController) Students(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	roster, err := ctrl.Service.Roster(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, RosterResponse{Students: roster})
}
