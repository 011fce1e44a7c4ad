// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/yalcinkaya/fitcircle/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Group, vb.)
type Repositories struct {
	User      repository.UserRepository
	Session   repository.SessionRepository
	Group     repository.GroupRepository
	Message   repository.MessageRepository
	Reaction  repository.ReactionRepository
	ReadState repository.ReadStateRepository
	Activity  repository.ActivityRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:      repository.NewSQLiteUserRepo(conn),
		Session:   repository.NewSQLiteSessionRepo(conn),
		Group:     repository.NewSQLiteGroupRepo(conn),
		Message:   repository.NewSQLiteMessageRepo(conn),
		Reaction:  repository.NewSQLiteReactionRepo(conn),
		ReadState: repository.NewSQLiteReadStateRepo(conn),
		Activity:  repository.NewSQLiteActivityRepo(conn),
	}
}
