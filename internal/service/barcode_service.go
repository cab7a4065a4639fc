package service

import (
	"errors"

	"go-price-scanner/internal/barcode"
	"go-price-scanner/internal/model"

	"github.com/google/uuid"
)

type BarcodeService interface {
	DecodeImage(data []byte) (string, error)
	Lookup(userID uuid.UUID, code string) (*model.LookupResponse, error)
}

type barcodeService struct {
	decoder barcode.Decoder
	catalog CatalogService
}

func NewBarcodeService(decoder barcode.Decoder, catalog CatalogService) BarcodeService {
	return &barcodeService{decoder: decoder, catalog: catalog}
}

func (s *barcodeService) DecodeImage(data []byte) (string, error) {
	code, err := s.decoder.Decode(data)
	switch {
	case err == nil:
		return code, nil
	case errors.Is(err, barcode.ErrNotFound):
		return "", ErrNoBarcodeInImage
	default:
		return "", newError(ErrImageDecode, "Invalid image file", err)
	}
}

func (s *barcodeService) Lookup(userID uuid.UUID, code string) (*model.LookupResponse, error) {
	product, err := s.catalog.FindByBarcode(userID, code)
	if err != nil {
		return nil, err
	}
	resp := product.ToLookupResponse()
	return &resp, nil
}
