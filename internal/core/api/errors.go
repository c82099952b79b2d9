package api

// Error mapping is done inline in handlers.
// Missing sets map to NOT_FOUND.
// Validation errors map to INVALID_ARGUMENT.
// Database errors map to UNAVAILABLE.
