package docstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitaehub/vitaehub/pkg/docstore"
	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

func TestMain(m *testing.M) {
	utils.SetupIDWorker(1)
	os.Exit(m.Run())
}

type fakeRemote struct {
	docs map[string]*types.CVDocument

	getErr    error
	createErr error
	mergeErr  error

	createCalls int
	mergeCalls  int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: make(map[string]*types.CVDocument)}
}

func (r *fakeRemote) Get(ctx context.Context, userID string) (*types.CVDocument, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.docs[userID], nil
}

func (r *fakeRemote) Create(ctx context.Context, userID string, doc *types.CVDocument) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.docs[userID] = doc.Clone()
	return nil
}

func (r *fakeRemote) SetWithMerge(ctx context.Context, userID string, doc *types.CVDocument) error {
	r.mergeCalls++
	if r.mergeErr != nil {
		return r.mergeErr
	}
	r.docs[userID] = doc.Clone()
	return nil
}

type fakeCache struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.values[key], nil
}

func (c *fakeCache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

var testProfile = types.UserProfile{
	UserID:      "u1",
	DisplayName: "Laura",
	Email:       "laura@example.com",
}

func Test_LoadExistingRemoteDocument(t *testing.T) {
	remote := newFakeRemote()
	remote.docs["u1"] = &types.CVDocument{Summary: "remote summary"}
	cache := newFakeCache()

	store := docstore.New(remote, cache)
	doc, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)
	assert.Equal(t, "remote summary", doc.Summary)
	assert.True(t, store.RemoteEnabled("u1"))

	// the remote copy must be mirrored locally
	cached := cache.values["cv:data:u1"]
	assert.NotEmpty(t, cached)
	var mirrored types.CVDocument
	assert.NoError(t, json.Unmarshal([]byte(cached), &mirrored))
	assert.Equal(t, "remote summary", mirrored.Summary)
}

func Test_LoadCreatesDefaultWhenRemoteEmpty(t *testing.T) {
	remote := newFakeRemote()
	cache := newFakeCache()

	store := docstore.New(remote, cache)
	doc, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)
	assert.Equal(t, 1, remote.createCalls)
	assert.Equal(t, "Laura", doc.PersonalInfo.Name)
	assert.Equal(t, "laura@example.com", doc.PersonalInfo.Email)
	assert.True(t, store.RemoteEnabled("u1"))
}

func Test_LoadFallsBackToCacheOnRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.getErr = errors.New("connection refused")
	cache := newFakeCache()
	raw, _ := json.Marshal(&types.CVDocument{Summary: "cached summary"})
	cache.values["cv:data:u1"] = string(raw)

	store := docstore.New(remote, cache)
	doc, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)
	assert.Equal(t, "cached summary", doc.Summary)
	assert.False(t, store.RemoteEnabled("u1"))
}

func Test_LoadDefaultFloorWhenEverythingFails(t *testing.T) {
	remote := newFakeRemote()
	remote.getErr = errors.New("connection refused")
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	store := docstore.New(remote, cache)
	doc, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)
	assert.Equal(t, "Laura", doc.PersonalInfo.Name)
	assert.False(t, store.RemoteEnabled("u1"))
}

func Test_LoadRejectsEmptyUser(t *testing.T) {
	store := docstore.New(newFakeRemote(), newFakeCache())
	_, err := store.Load(context.Background(), types.UserProfile{})
	assert.ErrorIs(t, err, docstore.ErrMissingUser)
}

func Test_MutateBeforeLoad(t *testing.T) {
	store := docstore.New(newFakeRemote(), newFakeCache())
	_, err := store.UpdateSummary(context.Background(), "u1", "hi")
	assert.ErrorIs(t, err, docstore.ErrNotLoaded)
}

func Test_AddSkillValidatesLevel(t *testing.T) {
	remote := newFakeRemote()
	store := docstore.New(remote, newFakeCache())
	_, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)

	_, err = store.AddSkill(context.Background(), "u1", types.Skill{Name: "Go", Level: 101})
	assert.ErrorIs(t, err, docstore.ErrInvalidSkill)

	doc, err := store.AddSkill(context.Background(), "u1", types.Skill{Name: "Go", Level: 80})
	assert.NoError(t, err)
	assert.Len(t, doc.Skills, 1)
	assert.NotEmpty(t, doc.Skills[0].ID)
}

func Test_SaveSurvivesRemoteWriteFailure(t *testing.T) {
	remote := newFakeRemote()
	cache := newFakeCache()

	var observedErr error
	store := docstore.New(remote, cache, docstore.WithRemoteResultObserver(func(userID string, err error) {
		observedErr = err
	}))

	_, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)

	remote.mergeErr = errors.New("write timeout")
	doc, err := store.UpdateSummary(context.Background(), "u1", "updated")
	assert.NoError(t, err)
	assert.Equal(t, "updated", doc.Summary)
	assert.Error(t, observedErr)
	assert.False(t, store.RemoteEnabled("u1"))

	// the local mirror still carries the update
	var mirrored types.CVDocument
	assert.NoError(t, json.Unmarshal([]byte(cache.values["cv:data:u1"]), &mirrored))
	assert.Equal(t, "updated", mirrored.Summary)

	// circuit stays open: no further remote writes this session
	calls := remote.mergeCalls
	_, err = store.UpdateSummary(context.Background(), "u1", "again")
	assert.NoError(t, err)
	assert.Equal(t, calls, remote.mergeCalls)
}

func Test_LoadResetsCircuit(t *testing.T) {
	remote := newFakeRemote()
	store := docstore.New(remote, newFakeCache())

	_, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)

	remote.mergeErr = errors.New("write timeout")
	_, err = store.UpdateSummary(context.Background(), "u1", "x")
	assert.NoError(t, err)
	assert.False(t, store.RemoteEnabled("u1"))

	remote.mergeErr = nil
	_, err = store.Load(context.Background(), testProfile)
	assert.NoError(t, err)
	assert.True(t, store.RemoteEnabled("u1"))
}

func Test_RemoveEducationAbsentIDStillSaves(t *testing.T) {
	remote := newFakeRemote()
	store := docstore.New(remote, newFakeCache())

	_, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)

	before := remote.mergeCalls
	doc, err := store.RemoveEducation(context.Background(), "u1", "edu_missing")
	assert.NoError(t, err)
	assert.Equal(t, before+1, remote.mergeCalls)
	assert.NotNil(t, doc)
}

func Test_EducationAddRemove(t *testing.T) {
	remote := newFakeRemote()
	store := docstore.New(remote, newFakeCache())

	_, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)

	doc, err := store.AddEducation(context.Background(), "u1", types.Education{
		Degree:      "Ingeniería de Sistemas",
		Institution: "Universidad Nacional",
		Year:        "2024",
	})
	assert.NoError(t, err)
	assert.Len(t, doc.Education, 1)
	id := doc.Education[0].ID
	assert.NotEmpty(t, id)

	doc, err = store.RemoveEducation(context.Background(), "u1", id)
	assert.NoError(t, err)
	assert.Len(t, doc.Education, 0)
}

func Test_DocumentReturnsCopy(t *testing.T) {
	remote := newFakeRemote()
	store := docstore.New(remote, newFakeCache())

	_, err := store.Load(context.Background(), testProfile)
	assert.NoError(t, err)

	doc, ok := store.Document("u1")
	assert.True(t, ok)
	doc.Summary = "mutated copy"

	current, ok := store.Document("u1")
	assert.True(t, ok)
	assert.NotEqual(t, "mutated copy", current.Summary)
}
