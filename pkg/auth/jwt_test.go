package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

const (
	testSecret = "identity-secret"
	testIssuer = "identity"
)

func TestGenerateJWT(t *testing.T) {
	jwtService := NewJWTService(testSecret, testIssuer)

	tests := []struct {
		name           string
		userID         string
		role           string
		expirationTime time.Time
	}{
		{
			name:           "User token",
			userID:         "u1",
			expirationTime: time.Now().Add(time.Hour),
		},
		{
			name:           "Service token",
			userID:         "billing",
			role:           RoleService,
			expirationTime: time.Now().Add(time.Hour),
		},
		{
			name:           "Expired token is still signed",
			userID:         "u1",
			expirationTime: time.Now().Add(-time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateJWT(tt.userID, tt.role, tt.expirationTime)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService(testSecret, testIssuer)

	tests := []struct {
		name         string
		tokenString  string
		setup        func() string
		expectedRole string
		expectError  error
	}{
		{
			name: "Valid token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("u1", "", time.Now().Add(time.Hour))
				return token
			},
		},
		{
			name: "Valid service token keeps its role",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("billing", RoleService, time.Now().Add(time.Hour))
				return token
			},
			expectedRole: RoleService,
		},
		{
			name:        "Garbage",
			tokenString: "invalid.token.string",
			expectError: ErrInvalidToken,
		},
		{
			name: "Expired token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("u1", "", time.Now().Add(-time.Hour))
				return token
			},
			expectError: ErrInvalidToken,
		},
		{
			name: "Signed with another secret",
			setup: func() string {
				token, _ := NewJWTService("other", testIssuer).GenerateJWT("u1", "", time.Now().Add(time.Hour))
				return token
			},
			expectError: ErrInvalidToken,
		},
		{
			name: "Foreign issuer",
			setup: func() string {
				token, _ := NewJWTService(testSecret, "someone-else").GenerateJWT("u1", "", time.Now().Add(time.Hour))
				return token
			},
			expectError: ErrInvalidClaims,
		},
		{
			name: "No user id",
			setup: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
					Issuer:    testIssuer,
				})
				signedToken, _ := token.SignedString([]byte(testSecret))
				return signedToken
			},
			expectError: ErrInvalidClaims,
		},
		{
			name: "Unsigned token",
			setup: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1", StandardClaims: jwt.StandardClaims{Issuer: testIssuer}})
				signedToken, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
				return signedToken
			},
			expectError: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString := tt.tokenString
			if tt.setup != nil {
				tokenString = tt.setup()
			}

			claims, err := jwtService.ValidateToken(tokenString)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
				assert.Equal(t, tt.expectedRole, claims.Role)
			}
		})
	}
}
