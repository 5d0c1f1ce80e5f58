package store

import (
	"context"

	"github.com/vitaehub/vitaehub/pkg/sqlstore"
	"github.com/vitaehub/vitaehub/pkg/types"
)

type UserStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.User) error
	GetUser(ctx context.Context, appid, id string) (*types.User, error)
	GetByEmail(ctx context.Context, appid, email string) (*types.User, error)
	UpdateProfile(ctx context.Context, appid, id, name, avatar string) error
}

type AccessTokenStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.AccessToken) error
	GetAccessToken(ctx context.Context, appid, token string) (*types.AccessToken, error)
	Delete(ctx context.Context, appid, userID, token string) error
	ClearUserTokens(ctx context.Context, appid, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CVDocumentStore is the remote backend of the resilient document store.
// Get returns (nil, nil) when the user has no document yet.
type CVDocumentStore interface {
	sqlstore.SqlCommons
	Get(ctx context.Context, userID string) (*types.CVDocument, error)
	Create(ctx context.Context, userID string, doc *types.CVDocument) error
	SetWithMerge(ctx context.Context, userID string, doc *types.CVDocument) error
	Delete(ctx context.Context, userID string) error
}

type JobExperienceStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.JobExperience) error
	List(ctx context.Context, page, pageSize uint64) ([]types.JobExperience, error)
}
