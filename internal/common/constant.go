package common

// AuthorizationHeaderName is the HTTP header carrying the session token
// on authenticated requests, as "Bearer <token>".
const AuthorizationHeaderName = "Authorization"
