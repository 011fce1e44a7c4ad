package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware) tarafından kullanılır — circular dependency'yi
// önler, her katman models'e bağımlı olabilir.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
