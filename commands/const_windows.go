package commands

const (
	_etc = `C:\ProgramData\accounts-sync`
	_var = `C:\ProgramData\accounts-sync\var`

	DEFAULT_WORKDIR = _var
	DEFAULT_CONFIG  = _etc + `\accounts-sync.toml`
	DEFAULT_ENV     = ".env"
	DEFAULT_TABLE   = "shopee_accounts"
)
