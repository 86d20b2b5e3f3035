package commands

const (
	_etc = "/usr/local/etc/accounts-sync"
	_var = "/usr/local/var/accounts-sync"

	DEFAULT_WORKDIR = _var
	DEFAULT_CONFIG  = _etc + "/accounts-sync.toml"
	DEFAULT_ENV     = ".env"
	DEFAULT_TABLE   = "shopee_accounts"
)
