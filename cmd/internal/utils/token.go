package utils

import (
	"clubcal/cmd/internal/utils/apierror"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const tokenDataKey = "token_data"

var ErrNoTokenData = errors.New("no token data in context")

// TokenData is what routes need to know about the caller.
type TokenData struct {
	Sub string
}

// ParseToken validates an HS256 bearer token and extracts its subject.
func ParseToken(raw string, secret []byte) (*TokenData, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &TokenData{Sub: claims.Subject}, nil
}

// JWTAuth rejects requests without a valid bearer token and stores the
// parsed TokenData for ParseTokenDataCtx.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			data, err := ParseToken(strings.TrimSpace(raw), secret)
			if err != nil {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			c.Set(tokenDataKey, data)
			return next(c)
		}
	}
}

func ParseTokenDataCtx(c echo.Context) (*TokenData, error) {
	data, ok := c.Get(tokenDataKey).(*TokenData)
	if !ok || data == nil {
		return nil, ErrNoTokenData
	}
	return data, nil
}
