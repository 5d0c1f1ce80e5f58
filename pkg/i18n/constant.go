package i18n

var ALLOW_LANG = map[string]bool{
	"en": true,
	"es": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"
	ERROR_EXIST             = "error.exist"

	// Closed set of auth failure codes. Anything outside this set falls back
	// to the generic login / register message.
	ERROR_AUTH_INVALID_EMAIL      = "error.auth.invalid_email"
	ERROR_AUTH_USER_DISABLED      = "error.auth.user_disabled"
	ERROR_AUTH_USER_NOT_FOUND     = "error.auth.user_not_found"
	ERROR_AUTH_WRONG_PASSWORD     = "error.auth.wrong_password"
	ERROR_AUTH_INVALID_CREDENTIAL = "error.auth.invalid_credential"
	ERROR_AUTH_EMAIL_IN_USE       = "error.auth.email_in_use"
	ERROR_AUTH_WEAK_PASSWORD      = "error.auth.weak_password"
	ERROR_AUTH_NOT_ALLOWED        = "error.auth.operation_not_allowed"
	ERROR_AUTH_LOGIN_FAILED       = "error.auth.login_failed"
	ERROR_AUTH_REGISTER_FAILED    = "error.auth.register_failed"

	ERROR_CHAT_CONNECTION = "error.chat.connection"
	ERROR_CV_SKILL_LEVEL  = "error.cv.skill_level"
)
