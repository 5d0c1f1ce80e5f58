package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/vitaehub/vitaehub/app/logic/v1"
	"github.com/vitaehub/vitaehub/app/response"
	"github.com/vitaehub/vitaehub/pkg/types"
)

type ListJobsResponse struct {
	List []types.JobExperience `json:"list"`
}

func (s *HttpSrv) ListJobs(c *gin.Context) {
	list, err := v1.NewJobLogic(c, s.Core).ListJobs()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListJobsResponse{List: list})
}
