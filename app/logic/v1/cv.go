package v1

import (
	"context"
	"net/http"

	"github.com/vitaehub/vitaehub/app/core"
	"github.com/vitaehub/vitaehub/pkg/docstore"
	"github.com/vitaehub/vitaehub/pkg/errors"
	"github.com/vitaehub/vitaehub/pkg/i18n"
	"github.com/vitaehub/vitaehub/pkg/types"
)

// CVLogic drives the resilient document store for the authed user.
type CVLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewCVLogic(ctx context.Context, core *core.Core) *CVLogic {
	return &CVLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *CVLogic) userID() string {
	claims, _ := InjectTokenClaim(l.ctx)
	return claims.User
}

// CVView is the document plus the sync indicator the editor renders.
type CVView struct {
	Document      *types.CVDocument `json:"document"`
	RemoteEnabled bool              `json:"remote_enabled"`
}

func (l *CVLogic) view(doc *types.CVDocument) *CVView {
	return &CVView{
		Document:      doc,
		RemoteEnabled: l.core.CVStore().RemoteEnabled(l.userID()),
	}
}

// Load opens the user's editing session. It never fails outright on storage
// trouble: the store falls back to cache and then to a default document.
func (l *CVLogic) Load() (*CVView, error) {
	profile, err := NewAuthedUserLogic(l.ctx, l.core).Profile()
	if err != nil {
		return nil, err
	}

	doc, err := l.core.CVStore().Load(l.ctx, profile)
	if err != nil {
		return nil, errors.New("CVLogic.Load.CVStore.Load", i18n.ERROR_INTERNAL, err)
	}
	return l.view(doc), nil
}

func (l *CVLogic) wrap(trace string, doc *types.CVDocument, err error) (*CVView, error) {
	if err == nil {
		return l.view(doc), nil
	}
	switch err {
	case docstore.ErrInvalidSkill:
		return nil, errors.New(trace, i18n.ERROR_CV_SKILL_LEVEL, err).Code(http.StatusBadRequest)
	case docstore.ErrNotLoaded, docstore.ErrMissingUser:
		return nil, errors.New(trace, i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	default:
		return nil, errors.New(trace, i18n.ERROR_INTERNAL, err)
	}
}

func (l *CVLogic) UpdatePersonalInfo(info types.PersonalInfo) (*CVView, error) {
	doc, err := l.core.CVStore().UpdatePersonalInfo(l.ctx, l.userID(), info)
	return l.wrap("CVLogic.UpdatePersonalInfo", doc, err)
}

func (l *CVLogic) UpdateSummary(summary string) (*CVView, error) {
	doc, err := l.core.CVStore().UpdateSummary(l.ctx, l.userID(), summary)
	return l.wrap("CVLogic.UpdateSummary", doc, err)
}

func (l *CVLogic) AddEducation(edu types.Education) (*CVView, error) {
	doc, err := l.core.CVStore().AddEducation(l.ctx, l.userID(), edu)
	return l.wrap("CVLogic.AddEducation", doc, err)
}

func (l *CVLogic) RemoveEducation(id string) (*CVView, error) {
	doc, err := l.core.CVStore().RemoveEducation(l.ctx, l.userID(), id)
	return l.wrap("CVLogic.RemoveEducation", doc, err)
}

func (l *CVLogic) AddSkill(skill types.Skill) (*CVView, error) {
	doc, err := l.core.CVStore().AddSkill(l.ctx, l.userID(), skill)
	return l.wrap("CVLogic.AddSkill", doc, err)
}

func (l *CVLogic) RemoveSkill(id string) (*CVView, error) {
	doc, err := l.core.CVStore().RemoveSkill(l.ctx, l.userID(), id)
	return l.wrap("CVLogic.RemoveSkill", doc, err)
}
