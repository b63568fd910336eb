package middleware

// SessionCookieName is the cookie carrying the credential-mode session id.
const SessionCookieName = "session_id"
