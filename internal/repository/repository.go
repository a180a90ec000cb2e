package repository

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Pagination dipakai oleh semua endpoint list.
type Pagination struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

func paginate(p Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		n := p.Normalize()
		return db.Offset(n.Offset()).Limit(n.PerPage)
	}
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// ErrStaleState dikembalikan oleh update bersyarat ketika baris sudah diubah oleh permintaan lain.
var ErrStaleState = errors.New("data sudah berubah")

// IsNotFound true bila record tidak ditemukan.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey mengenali pelanggaran unique index dari semua driver yang dipakai.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// deleteByID menghapus satu baris dan mengembalikan ErrRecordNotFound bila tidak ada yang terhapus.
func deleteByID(db *gorm.DB, value interface{}, id uint) error {
	res := db.Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func yearPrefix(tahun int) string {
	return fmt.Sprintf("%04d-%%", tahun)
}

func monthPrefix(tahun, bulan int) string {
	return fmt.Sprintf("%04d-%02d-%%", tahun, bulan)
}
