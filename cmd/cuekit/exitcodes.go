package main

// Exit codes for the CLI
const (
	ExitSuccess           = 0
	ExitGeneralError      = 1
	ExitServerUnreachable = 2
	ExitAuthFailed        = 3
	ExitNotFound          = 4
	ExitRateLimited       = 5
	ExitMissingField      = 6
)
