package docstore

import (
	"fmt"

	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

// Placeholder values for profile fields the auth provider does not carry.
const (
	defaultName     = "Usuario"
	defaultTitle    = "Estudiante"
	defaultPhone    = "+57 300 000 0000"
	defaultLocation = "Colombia"
	defaultSummary  = "Completa tu resumen profesional aquí. Describe tus objetivos, habilidades y lo que te apasiona."

	avatarServiceURL = "https://api.dicebear.com/7.x/avataaars/svg?seed=%s"
)

// DefaultDocument builds the starting CV from the user's profile attributes.
func DefaultDocument(profile types.UserProfile) *types.CVDocument {
	name := profile.DisplayName
	if name == "" {
		name = defaultName
	}
	avatar := profile.Avatar
	if avatar == "" {
		avatar = fmt.Sprintf(avatarServiceURL, profile.UserID)
	}

	return &types.CVDocument{
		PersonalInfo: types.PersonalInfo{
			Name:     name,
			Title:    defaultTitle,
			Email:    profile.Email,
			Phone:    defaultPhone,
			Location: defaultLocation,
			Avatar:   avatar,
		},
		Summary:   defaultSummary,
		Education: []types.Education{},
		Skills:    []types.Skill{},
	}
}

func NewEducationID() string {
	return "edu_" + utils.GenUniqIDStr()
}

func NewSkillID() string {
	return "skill_" + utils.GenUniqIDStr()
}
