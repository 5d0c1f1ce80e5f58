package v1

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/vitaehub/vitaehub/app/core"
	"github.com/vitaehub/vitaehub/pkg/errors"
	"github.com/vitaehub/vitaehub/pkg/i18n"
	"github.com/vitaehub/vitaehub/pkg/security"
	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/utils"
)

// logic for unlogin
type UserLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewUserLogic(ctx context.Context, core *core.Core) *UserLogic {
	l := &UserLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

func (l *UserLogic) Register(appid, name, email, password string) (string, error) {
	if !emailRe.MatchString(email) {
		return "", errors.New("UserLogic.Register.email.check", i18n.ERROR_AUTH_INVALID_EMAIL, nil).Code(http.StatusBadRequest)
	}
	if len(password) < minPasswordLen {
		return "", errors.New("UserLogic.Register.password.check", i18n.ERROR_AUTH_WEAK_PASSWORD, nil).Code(http.StatusBadRequest)
	}

	exist, err := l.core.Store().UserStore().GetByEmail(l.ctx, appid, email)
	if err != nil {
		return "", errors.New("UserLogic.Register.UserStore.GetByEmail", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return "", errors.New("UserLogic.Register.email.exist", i18n.ERROR_AUTH_EMAIL_IN_USE, nil).Code(http.StatusBadRequest)
	}

	salt := utils.RandomStr(10)
	userID := utils.GenUniqIDStr()

	err = l.core.Store().UserStore().Create(l.ctx, types.User{
		ID:        userID,
		Appid:     appid,
		Name:      name,
		Email:     email,
		Avatar:    l.core.Cfg().Site.DefaultAvatar,
		Salt:      salt,
		Source:    "platform",
		Password:  utils.GenUserPassword(salt, password),
		UpdatedAt: time.Now().Unix(),
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", errors.New("UserLogic.Register.UserStore.Create", i18n.ERROR_AUTH_REGISTER_FAILED, err)
	}

	return userID, nil
}

func (l *UserLogic) Login(appid, email, password string) (string, error) {
	if !emailRe.MatchString(email) {
		return "", errors.New("UserLogic.Login.email.check", i18n.ERROR_AUTH_INVALID_EMAIL, nil).Code(http.StatusBadRequest)
	}

	user, err := l.core.Store().UserStore().GetByEmail(l.ctx, appid, email)
	if err != nil {
		return "", errors.New("UserLogic.Login.UserStore.GetByEmail", i18n.ERROR_AUTH_LOGIN_FAILED, err)
	}

	if user == nil {
		return "", errors.New("UserLogic.Login.user.check", i18n.ERROR_AUTH_USER_NOT_FOUND, nil).Code(http.StatusBadRequest)
	}

	if user.Password != utils.GenUserPassword(user.Salt, password) {
		return "", errors.New("UserLogic.Login.password.check", i18n.ERROR_AUTH_WRONG_PASSWORD, nil).Code(http.StatusBadRequest)
	}

	claims := security.NewTokenClaims(appid, types.DEFAULT_APPID, user.ID, time.Now().AddDate(0, 1, 0).Unix())
	accessToken, err := security.GenJWT(claims, l.core.Cfg().Security.EncryptKey)
	if err != nil {
		return "", errors.New("UserLogic.Login.GenJWT", i18n.ERROR_AUTH_LOGIN_FAILED, err)
	}

	// the row exists so logout and the nightly cleanup can revoke the token
	err = l.core.Store().AccessTokenStore().Create(l.ctx, types.AccessToken{
		Appid:     appid,
		UserID:    user.ID,
		Token:     accessToken,
		Version:   types.DEFAULT_ACCESS_TOKEN_VERSION,
		Info:      "login",
		CreatedAt: time.Now().Unix(),
		ExpiresAt: claims.ExpireTime,
	})
	if err != nil {
		return "", errors.New("UserLogic.Login.AccessTokenStore.Create", i18n.ERROR_AUTH_LOGIN_FAILED, err)
	}

	return accessToken, nil
}

type UserBaseInfo struct {
	ID        string `json:"id"`
	Appid     string `json:"appid"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
	UpdatedAt int64  `json:"updated_at"`
	CreatedAt int64  `json:"created_at"`
}

// logic for the authed user, claims come from the access token middleware
type AuthedUserLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthedUserLogic(ctx context.Context, core *core.Core) *AuthedUserLogic {
	return &AuthedUserLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *AuthedUserLogic) mustGetClaims() (appid, userID string) {
	claims, _ := InjectTokenClaim(l.ctx)
	return claims.Appid, claims.User
}

func (l *AuthedUserLogic) GetUser() (*UserBaseInfo, error) {
	appid, userID := l.mustGetClaims()
	user, err := l.core.Store().UserStore().GetUser(l.ctx, appid, userID)
	if err != nil {
		return nil, errors.New("AuthedUserLogic.GetUser.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	if user == nil {
		return nil, errors.New("AuthedUserLogic.GetUser.UserStore.GetUser.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	return &UserBaseInfo{
		ID:        user.ID,
		Appid:     user.Appid,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Email:     user.Email,
		UpdatedAt: user.UpdatedAt,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Profile builds the slice of user data the CV document seeds itself from.
func (l *AuthedUserLogic) Profile() (types.UserProfile, error) {
	user, err := l.GetUser()
	if err != nil {
		return types.UserProfile{}, err
	}
	return types.UserProfile{
		UserID:      user.ID,
		DisplayName: user.Name,
		Email:       user.Email,
		Avatar:      user.Avatar,
	}, nil
}

func (l *AuthedUserLogic) Logout(token string) error {
	appid, userID := l.mustGetClaims()
	if err := l.core.Store().AccessTokenStore().Delete(l.ctx, appid, userID, token); err != nil {
		return errors.New("AuthedUserLogic.Logout.AccessTokenStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
