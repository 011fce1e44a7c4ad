// Package repository, veritabanı erişim katmanını barındırır.
//
// Repository Pattern: her entity için bir interface + SQLite implementasyonu.
// Service katmanı interface'e bağımlıdır — test'te fake, production'da SQLite.
// Tüm implementasyonlar database.TxQuerier kabul eder: normal operasyonlarda
// *sql.DB, transaction içinde *sql.Tx geçilir.
package repository

import (
	"context"

	"github.com/yalcinkaya/fitcircle/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
