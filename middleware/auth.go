package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// UserIDKey holds the authenticated practitioner ID in the gin context.
const UserIDKey = "user_id"

var (
	errMissingToken = errors.New("missing bearer token")
	errMissingSub   = errors.New("token has no subject")
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

// ParseSubject verifies an HS256 token signed with secret and returns its
// subject claim. Expiry and not-before are enforced by the claims validation.
func ParseSubject(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errMissingSub
	}
	return claims.Subject, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject as the practitioner ID. Preflight requests pass through.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token, err := bearerToken(c)
		if err == nil {
			var sub string
			if sub, err = ParseSubject(token, secret); err == nil {
				c.Set(UserIDKey, sub)
				c.Next()
				return
			}
		}
		util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, err.Error())
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Invalid or missing access token",
			Err: err,
		})
		c.Abort()
	}
}

// GetUserID returns the practitioner ID set by RequireAuth.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
