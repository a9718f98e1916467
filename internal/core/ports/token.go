package ports

// TokenIssuer is the signing half of the token codec. Only the auth
// service holds it.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// TokenVerifier is the verification half of the token codec. Only the
// authentication middleware holds it. Every failure mode (malformed,
// tampered, expired) surfaces as domain.ErrTokenInvalid so callers get
// no oracle for why a token was rejected.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
