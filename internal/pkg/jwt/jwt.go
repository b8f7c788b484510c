package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(employeeID, companyID, role string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey        string
	accessExpiration string
	tokenAuth        *jwtauth.JWTAuth
	revokedTokens    map[string]int64
	mu               sync.RWMutex
}

func NewJWTService(secretKey string, accessExpiration string) Service {
	return &JWTService{
		secretKey:        secretKey,
		accessExpiration: accessExpiration,
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:    make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID, companyID, role string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        role,
		"type":        "access",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}
