package controller

import (
	"errors"

	"spmtutor/internal/service"
	"spmtutor/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Service *service.ProfileService
}

func NewProfileController(svc *service.ProfileService) *ProfileController {
	return &ProfileController{Service: svc}
}

// Me godoc
// @Summary 当前学生资料
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.Profile
// @Failure 401 {object} util.ErrorResponse
// @Router /me [get]
func (ctrl *ProfileController) Me(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	profile, err := ctrl.Service.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		// token 有效但账号已不存在
		if errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(c)
			return
		}
		util.HandleError(c, err)
		return
	}
	util.Success(c, profile)
}
