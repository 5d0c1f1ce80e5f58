package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/vitaehub/vitaehub/app/logic/v1"
	"github.com/vitaehub/vitaehub/app/response"
	"github.com/vitaehub/vitaehub/cmd/service/middleware"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=32"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

func (s *HttpSrv) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	appid, _ := v1.InjectAppid(c)
	userID, err := v1.NewUserLogic(c, s.Core).Register(appid, req.Name, req.Email, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, RegisterResponse{UserID: userID})
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *HttpSrv) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	appid, _ := v1.InjectAppid(c)
	token, err := v1.NewUserLogic(c, s.Core).Login(appid, req.Email, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, LoginResponse{AccessToken: token})
}

func (s *HttpSrv) Logout(c *gin.Context) {
	token := c.GetHeader(middleware.ACCESS_TOKEN_HEADER_KEY)
	if err := v1.NewAuthedUserLogic(c, s.Core).Logout(token); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type GetUserResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Appid    string `json:"appid"`
}

func (s *HttpSrv) GetUser(c *gin.Context) {
	user, err := v1.NewAuthedUserLogic(c, s.Core).GetUser()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, GetUserResponse{
		UserID:   user.ID,
		UserName: user.Name,
		Avatar:   user.Avatar,
		Email:    user.Email,
		Appid:    user.Appid,
	})
}
