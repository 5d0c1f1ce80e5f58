package types

const (
	DEFAULT_APPID = "vitaehub"

	LANGUAGE_EN_KEY = "en"
	LANGUAGE_ES_KEY = "es"
)

const NO_PAGING = 0
