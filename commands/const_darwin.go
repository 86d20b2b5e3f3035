package commands

const (
	_etc = "/usr/local/etc/com.github.affiliate-dashboard/accounts-sync"
	_var = "/usr/local/var/com.github.affiliate-dashboard/accounts-sync"

	DEFAULT_WORKDIR = _var
	DEFAULT_CONFIG  = _etc + "/accounts-sync.toml"
	DEFAULT_ENV     = ".env"
	DEFAULT_TABLE   = "shopee_accounts"
)
