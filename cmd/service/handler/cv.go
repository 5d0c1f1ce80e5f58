package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/vitaehub/vitaehub/app/logic/v1"
	"github.com/vitaehub/vitaehub/app/response"
	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

func (s *HttpSrv) GetCV(c *gin.Context) {
	view, err := v1.NewCVLogic(c, s.Core).Load()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}

type UpdatePersonalInfoRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=64"`
	Title    string `json:"title" form:"title" binding:"max=64"`
	Email    string `json:"email" form:"email" binding:"max=128"`
	Phone    string `json:"phone" form:"phone" binding:"max=32"`
	Location string `json:"location" form:"location" binding:"max=64"`
	Avatar   string `json:"avatar" form:"avatar"`
}

func (s *HttpSrv) UpdatePersonalInfo(c *gin.Context) {
	var req UpdatePersonalInfoRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	view, err := v1.NewCVLogic(c, s.Core).UpdatePersonalInfo(types.PersonalInfo{
		Name:     req.Name,
		Title:    req.Title,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Avatar:   req.Avatar,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}

type UpdateSummaryRequest struct {
	Summary string `json:"summary" form:"summary"`
}

func (s *HttpSrv) UpdateSummary(c *gin.Context) {
	var req UpdateSummaryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	view, err := v1.NewCVLogic(c, s.Core).UpdateSummary(req.Summary)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}

type AddEducationRequest struct {
	Degree      string `json:"degree" form:"degree" binding:"required,max=128"`
	Institution string `json:"institution" form:"institution" binding:"required,max=128"`
	Year        string `json:"year" form:"year" binding:"max=32"`
	Description string `json:"description" form:"description"`
}

func (s *HttpSrv) AddEducation(c *gin.Context) {
	var req AddEducationRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	view, err := v1.NewCVLogic(c, s.Core).AddEducation(types.Education{
		Degree:      req.Degree,
		Institution: req.Institution,
		Year:        req.Year,
		Description: req.Description,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}

func (s *HttpSrv) RemoveEducation(c *gin.Context) {
	id, _ := c.Params.Get("id")
	view, err := v1.NewCVLogic(c, s.Core).RemoveEducation(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}

type AddSkillRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=64"`
	Level int    `json:"level" form:"level"`
}

func (s *HttpSrv) AddSkill(c *gin.Context) {
	var req AddSkillRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	view, err := v1.NewCVLogic(c, s.Core).AddSkill(types.Skill{
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}

func (s *HttpSrv) RemoveSkill(c *gin.Context) {
	id, _ := c.Params.Get("id")
	view, err := v1.NewCVLogic(c, s.Core).RemoveSkill(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, view)
}
