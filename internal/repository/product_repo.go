package repository

import (
	"go-price-scanner/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// insertBatchSize keeps each INSERT well under the bind parameter limits of sqlite and postgres
const insertBatchSize = 500

type ProductRepository interface {
	FindByUser(userID uuid.UUID) ([]model.Product, error)
	FindByBarcode(userID uuid.UUID, code string) (*model.Product, error)
	DeleteByUser(tx *gorm.DB, userID uuid.UUID) error
	CreateBatch(tx *gorm.DB, products []model.Product) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindByUser(userID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("user_id = ?", userID).Find(&products).Error
	return products, err
}

// FindByBarcode returns any one product of the user carrying the code.
// Duplicate barcodes are allowed; which one wins is unspecified.
func (r *productRepo) FindByBarcode(userID uuid.UUID, code string) (*model.Product, error) {
	var product model.Product
	err := r.db.Where("user_id = ? AND barcode = ?", userID, code).Take(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) DeleteByUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&model.Product{}).Error
}

func (r *productRepo) CreateBatch(tx *gorm.DB, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return tx.CreateInBatches(products, insertBatchSize).Error
}
