package constants

const (
	CookieKeySecretToken = "secret_token"

	CtxKeyRequestID = "request_id"
	HeaderRequestID = "X-Request-ID"
)

// ключи конфига
const (
	ViperSecretKey = "auth.secret"
	ViperJWTKey    = "auth.jwt_key"

	ViperServerAddr        = "server.addr"
	ViperServerAllowOrigin = "server.allow_origins"

	ViperDBDSN = "db.dsn"

	ViperLogLevel = "log.level"

	ViperBLSBaseURL    = "bls.base_url"
	ViperBLSUserAgent  = "bls.user_agent"
	ViperBLSDataPrefix = "bls.data_prefix"
	ViperBLSRetries    = "bls.retries"
)
