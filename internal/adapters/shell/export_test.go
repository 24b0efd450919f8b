package shell

// Exported for white-box testing.
var ResolveEnvironmentExported = resolveEnvironment
