package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zerovault/zerovault/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT with the given parameters.
//
// The token carries the standard claims:
//   - Issuer    (iss): the service issuing the token
//   - Subject   (sub): the account ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required; an error is returned if any is empty or zero.
func GenerateJWTToken(issuer string, accountID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, AccountID: accountID}, nil
}

// ValidateAndParseJWTToken validates the given JWT string and extracts its
// claims.
//
// Validation covers the HMAC signature against signKey, the issuer claim
// against tokenIssuer, the expiry claim, and the presence of a subject claim
// convertible to an int64 account ID.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to account ID: %w", err)
	}

	return models.Token{Token: token, AccountID: accountID}, nil
}
