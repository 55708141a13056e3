package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// User - пользователь. Регистрация и кастодия баланса живут во внешнем
// сервисе, здесь только чтение и списание/начисление
type User struct {
	ID          int
	Login       string
	BalanceUsdt float64
}

type UserClaims struct {
	jwt.RegisteredClaims
}
