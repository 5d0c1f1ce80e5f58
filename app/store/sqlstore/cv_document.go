package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vitaehub/vitaehub/pkg/register"
	"github.com/vitaehub/vitaehub/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.CVDocumentStore = NewCVDocumentStore(provider)
	})
}

// CVDocumentStore keeps one JSONB document per user.
type CVDocumentStore struct {
	CommonFields
}

func NewCVDocumentStore(provider SqlProviderAchieve) *CVDocumentStore {
	repo := &CVDocumentStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CV_DOCUMENT)
	repo.SetAllColumns("user_id", "document", "updated_at")
	return repo
}

func (s *CVDocumentStore) Get(ctx context.Context, userID string) (*types.CVDocument, error) {
	query := sq.Select("document").From(s.GetTable()).Where(sq.Eq{"user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var raw []byte
	if err = s.GetReplica(ctx).Get(&raw, queryString, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var doc types.CVDocument
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *CVDocumentStore) Create(ctx context.Context, userID string, doc *types.CVDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	query := sq.Insert(s.GetTable()).
		Columns("user_id", "document", "updated_at").
		Values(userID, raw, time.Now().Unix())

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// SetWithMerge upserts the document, merging the new payload over whatever
// is stored so fields absent from the incoming document survive.
func (s *CVDocumentStore) SetWithMerge(ctx context.Context, userID string, doc *types.CVDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	queryString := `INSERT INTO ` + s.GetTable() + ` (user_id, document, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
    document = ` + s.GetTable() + `.document || EXCLUDED.document,
    updated_at = EXCLUDED.updated_at`

	_, err = s.GetMaster(ctx).Exec(queryString, userID, raw, time.Now().Unix())
	return err
}

func (s *CVDocumentStore) Delete(ctx context.Context, userID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
