package interfaces

import (
	"estimador/internal/domain/entities"
	"time"
)

// IPasswordHasher hashes and verifies user credentials.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// ITokenIssuer signs session tokens for an identity and parses them back.
type ITokenIssuer interface {
	Issue(identity entities.Identity) (token string, expiresAt time.Time, err error)
	Parse(token string) (entities.Identity, error)
}
