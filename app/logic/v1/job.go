package v1

import (
	"context"

	"github.com/vitaehub/vitaehub/app/core"
	"github.com/vitaehub/vitaehub/pkg/errors"
	"github.com/vitaehub/vitaehub/pkg/i18n"
	"github.com/vitaehub/vitaehub/pkg/types"
)

// JobLogic serves the read-only job history timeline.
type JobLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewJobLogic(ctx context.Context, core *core.Core) *JobLogic {
	return &JobLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *JobLogic) ListJobs() ([]types.JobExperience, error) {
	list, err := l.core.Store().JobExperienceStore().List(l.ctx, types.NO_PAGING, types.NO_PAGING)
	if err != nil {
		return nil, errors.New("JobLogic.ListJobs.JobExperienceStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
