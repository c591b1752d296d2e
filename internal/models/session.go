package models

import "github.com/golang-jwt/jwt/v5"

// ViewClaims данные, хранящиеся в JWT cookie представления формы
type ViewClaims struct {
	ViewID string `json:"view_id"`
	jwt.RegisteredClaims
}
