package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, filesystem failure)
	ExitConfigError = 2 // Configuration error (malformed taxonomy.yml, catalog not built)
	ExitDataError   = 3 // Data error (unreadable citation file, malformed taxonomy document)
)
