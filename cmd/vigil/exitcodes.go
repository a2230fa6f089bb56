package main

// Exit codes shared by all vigil commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing credentials, unknown provider or store)
	ExitDataError   = 3 // Data error (malformed seed files, failed count verification)
)
