package command

const (
	appNameFlag     = "app-name"
	consoleAddrFlag = "console-addr"
	stdinFlag       = "stdin"
	jsonFlag        = "json"
	checkFlag       = "check"
	waitFlag        = "wait"
)
