package lib

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Pagination describes the page slice attached to list responses. HasMore is
// approximate: a full page reports true even when it was the last one.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// MessageResponse returns the error/info envelope
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"message": message,
	}
}

// DataResponse returns the success envelope
func DataResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// PagedResponse returns the success envelope for paginated lists
func PagedResponse(data interface{}, p Pagination) fiber.Map {
	return fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": p,
	}
}

// GenerateJWT signs a 24h token carrying the user id
func GenerateJWT(userID string, secret string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyJWT validates the token signature and returns the embedded user id
func VerifyJWT(tokenString string, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return userID, nil
}
