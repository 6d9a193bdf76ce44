package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// GenerateDashboardToken creates a signed token carrying the store id, issued
// after a successful install so dashboard calls can omit store_id.
func GenerateDashboardToken(storeID int64) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set in the environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"store_id": storeID,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseDashboardToken verifies a dashboard token and returns the store id.
func ParseDashboardToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	storeIDFloat, ok := claims["store_id"].(float64) // JWT numeric values are float64
	if !ok {
		return 0, fmt.Errorf("invalid store id in token")
	}

	return int64(storeIDFloat), nil
}
