package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasktrack/config"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Credential == "" {
		return nil, errors.New("credential signing secret must be provided")
	}

	ttl := 7 * 24 * time.Hour
	issuer := ""
	if cfg.Auth != nil {
		if cfg.Auth.CredentialTTL > 0 {
			ttl = cfg.Auth.CredentialTTL
		}
		issuer = cfg.Auth.Issuer
	}

	return newJWTService(cfg.SecretKey.Credential, ttl, issuer, time.Now), nil
}

func newJWTService(secret string, ttl time.Duration, issuer string, now func() time.Time) *jwtService {
	s := &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    now,
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	s.parser = jwt.NewParser(opts...)

	return s
}

// Issue signs a credential for subjectID. Timestamps are truncated to whole
// seconds because that is what the token encodes.
func (s *jwtService) Issue(subjectID uuid.UUID) (*entity.Credential, error) {
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subjectID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign credential")
	}

	return &entity.Credential{
		Token:     token,
		SubjectID: subjectID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify reports whether the token was signed by this service and is unexpired.
func (s *jwtService) Verify(token string) entity.Verdict {
	if token == "" {
		return entity.InvalidVerdict
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return entity.InvalidVerdict
	}

	// The library accepts now == exp; a credential is only valid strictly before it.
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return entity.InvalidVerdict
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return entity.InvalidVerdict
	}

	return entity.Verdict{Valid: true, SubjectID: subjectID}
}
