package model

import "github.com/google/uuid"

// Product is one catalog line owned by a user. Prices stay text so the
// spreadsheet formatting survives the import untouched.
type Product struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"produit"`
	SalePrice     string    `gorm:"type:varchar(100);not null" json:"ppv"`
	PurchasePrice string    `gorm:"type:varchar(100);not null" json:"pph"`
	Barcode       string    `gorm:"type:varchar(100);not null;index" json:"code_barre"`
}

// LookupResponse is the body returned by a barcode lookup. Category and
// VAT have no backing columns yet and are always empty.
type LookupResponse struct {
	Name          string `json:"produit"`
	SalePrice     string `json:"ppv"`
	PurchasePrice string `json:"pph"`
	Category      string `json:"categorie"`
	VAT           string `json:"tva"`
}

// ToLookupResponse converts Product to LookupResponse
func (p *Product) ToLookupResponse() LookupResponse {
	return LookupResponse{
		Name:          p.Name,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
	}
}
