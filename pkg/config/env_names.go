package config

// Environment variable names, exported so tests and tooling can reference
// them without duplicating strings.
const (
	EnvPrefix = "TIENDA"

	EnvAppEnv       = "TIENDA_APP_ENV"
	EnvLogLevel     = "TIENDA_LOG_LEVEL"
	EnvLogWarnStack = "TIENDA_LOG_WARN_STACK"

	EnvBackendURL     = "TIENDA_BACKEND_URL"
	EnvBackendTimeout = "TIENDA_BACKEND_TIMEOUT"

	EnvStorageBackend = "TIENDA_STORAGE_BACKEND"
	EnvStateDir       = "TIENDA_STATE_DIR"

	EnvRedisURL  = "TIENDA_REDIS_URL"
	EnvRedisAddr = "TIENDA_REDIS_ADDR"
	EnvRedisDB   = "TIENDA_REDIS_DB"

	EnvCheckoutMerchant        = "TIENDA_CHECKOUT_MERCHANT"
	EnvCheckoutPaymentWindow   = "TIENDA_CHECKOUT_PAYMENT_WINDOW"
	EnvCheckoutRequireAddress  = "TIENDA_CHECKOUT_REQUIRE_ADDRESS"
	EnvCheckoutMinAddressLen   = "TIENDA_CHECKOUT_MIN_ADDRESS_LEN"
	EnvCheckoutRequireLocality = "TIENDA_CHECKOUT_REQUIRE_LOCALITY"
)
