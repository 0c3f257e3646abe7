// Package configkeys names the dotted configuration keys shared by config loaders.
package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigEffectPrefix = ConfigPrefix + delimiter + "effect"

	ConfigEffectLogPrefix = ConfigEffectPrefix + delimiter + "log"

	ConfigEffectLogHandlerPrefix     = ConfigEffectLogPrefix + delimiter + "handler"
	ConfigEffectLogHandlerBufferSize = ConfigEffectLogHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectLogHandlerNumWorkers = ConfigEffectLogHandlerPrefix + delimiter + "num_workers"

	ConfigStorePrefix      = ConfigPrefix + delimiter + "store"
	ConfigStoreMailboxHint = ConfigStorePrefix + delimiter + "mailbox_hint"

	ConfigCatalogPrefix       = ConfigPrefix + delimiter + "catalog"
	ConfigCatalogCacheSize    = ConfigCatalogPrefix + delimiter + "cache_size"
	ConfigCatalogFetchTimeout = ConfigCatalogPrefix + delimiter + "fetch_timeout"
	ConfigCatalogAttempts     = ConfigCatalogPrefix + delimiter + "attempts"
)
