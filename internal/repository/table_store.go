package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableStore is generic CRUD over one table, used by the admin console.
// It never deletes rows.
type TableStore[T any] interface {
	List() ([]T, error)
	Get(id uuid.UUID) (*T, error)
	Create(row *T) error
	Update(id uuid.UUID, fields map[string]interface{}) (*T, error)
}

type gormTableStore[T any] struct {
	db    *gorm.DB
	order string
}

// NewTableStore returns a TableStore backed by gorm, listing rows by the given ORDER BY clause
func NewTableStore[T any](db *gorm.DB, order string) TableStore[T] {
	return &gormTableStore[T]{db: db, order: order}
}

func (s *gormTableStore[T]) List() ([]T, error) {
	var rows []T
	q := s.db
	if s.order != "" {
		q = q.Order(s.order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormTableStore[T]) Get(id uuid.UUID) (*T, error) {
	var row T
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormTableStore[T]) Create(row *T) error {
	return s.db.Create(row).Error
}

// Update applies column -> value pairs and returns the fresh row
func (s *gormTableStore[T]) Update(id uuid.UUID, fields map[string]interface{}) (*T, error) {
	var zero T
	res := s.db.Model(&zero).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.Get(id)
}
