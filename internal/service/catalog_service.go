package service

import (
	"errors"
	"io"
	"strings"

	"go-price-scanner/internal/importer"
	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(userID uuid.UUID) ([]model.Product, error)
	ReplaceProducts(userID uuid.UUID, rows []importer.Row) error
	ImportCSV(userID uuid.UUID, r io.Reader) (int, error)
	FindByBarcode(userID uuid.UUID, code string) (*model.Product, error)
	Dashboard(userID uuid.UUID) (*DashboardView, error)
}

// DashboardView is what a signed-in user sees on /dashboard
type DashboardView struct {
	User        model.UserResponse `json:"user"`
	CSVUploaded bool               `json:"csv_uploaded"`
	Products    []model.Product    `json:"products"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
}

func NewCatalogService(pRepo repository.ProductRepository, uRepo repository.UserRepository, db *gorm.DB) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		userRepo:    uRepo,
		db:          db,
	}
}

func (s *catalogService) ListProducts(userID uuid.UUID) ([]model.Product, error) {
	products, err := s.productRepo.FindByUser(userID)
	if err != nil {
		return nil, newError(ErrStorage, "failed to list products", err)
	}
	return products, nil
}

// ReplaceProducts swaps the whole catalog of a user. Either every row is
// stored and the user is flagged as imported, or nothing changes.
func (s *catalogService) ReplaceProducts(userID uuid.UUID, rows []importer.Row) error {
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, model.Product{
			UserID:        userID,
			Name:          row.Name,
			SalePrice:     row.SalePrice,
			PurchasePrice: row.PurchasePrice,
			Barcode:       strings.TrimSpace(row.Barcode),
		})
	}

	// Gunakan Transaction Block (Atomic Operation)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.DeleteByUser(tx, userID); err != nil {
			return err
		}
		if err := s.productRepo.CreateBatch(tx, products); err != nil {
			return err
		}
		return s.userRepo.MarkCSVUploaded(tx, userID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "user not found", nil)
		}
		return newError(ErrStorage, "failed to replace products", err)
	}
	return nil
}

// ImportCSV parses a spreadsheet export and replaces the user's catalog with it
func (s *catalogService) ImportCSV(userID uuid.UUID, r io.Reader) (int, error) {
	rows, err := importer.Parse(r)
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceProducts(userID, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *catalogService) FindByBarcode(userID uuid.UUID, code string) (*model.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, newError(ErrValidation, "No barcode provided", nil)
	}

	product, err := s.productRepo.FindByBarcode(userID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarcodeNotFound
		}
		return nil, newError(ErrStorage, "failed to look up barcode", err)
	}
	return product, nil
}

func (s *catalogService) Dashboard(userID uuid.UUID) (*DashboardView, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "user not found", nil)
		}
		return nil, newError(ErrStorage, "failed to load user", err)
	}

	products, err := s.ListProducts(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		User:        user.ToResponse(),
		CSVUploaded: user.CSVUploaded,
		Products:    products,
	}, nil
}
