package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/vitaehub/vitaehub/pkg/register"
	"github.com/vitaehub/vitaehub/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.JobExperienceStore = NewJobExperienceStore(provider)
	})
}

type JobExperienceStore struct {
	CommonFields
}

func NewJobExperienceStore(provider SqlProviderAchieve) *JobExperienceStore {
	repo := &JobExperienceStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_JOB_EXPERIENCE)
	repo.SetAllColumns("id", "position", "company", "location", "start_date", "end_date", "type", "description", "achievements", "sort")
	return repo
}

func (s *JobExperienceStore) Create(ctx context.Context, data types.JobExperience) error {
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Position, data.Company, data.Location, data.StartDate, data.EndDate, data.Type, data.Description, data.Achievements, data.Sort)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List returns the timeline ordered by sort. Pass types.NO_PAGING for both
// arguments to fetch the whole history.
func (s *JobExperienceStore) List(ctx context.Context, page, pageSize uint64) ([]types.JobExperience, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("sort ASC")
	if page != types.NO_PAGING && pageSize != types.NO_PAGING {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var list []types.JobExperience
	if err = s.GetReplica(ctx).Select(&list, queryString, args...); err != nil {
		return nil, err
	}
	return list, nil
}
