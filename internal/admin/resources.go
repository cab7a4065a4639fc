package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserView lists accounts. Credentials and session state are never shown,
// and email or role cannot be changed from here.
func UserView(store repository.TableStore[model.User]) *Resource[model.User] {
	return &Resource[model.User]{
		Path:    "users",
		Title:   "Users",
		Store:   store,
		Can:     Capabilities{Edit: true},
		Access:  IsAdmin,
		Columns: []string{"id", "name", "email", "payment_status", "is_admin", "csv_uploaded", "created_at"},
		Project: func(u *model.User) map[string]interface{} {
			return map[string]interface{}{
				"id":             u.ID.String(),
				"name":           u.Name,
				"email":          u.Email,
				"payment_status": string(u.PaymentStatus),
				"is_admin":       u.IsAdmin,
				"csv_uploaded":   u.CSVUploaded,
				"created_at":     u.CreatedAt,
			}
		},
		Editable: map[string]Field{
			"name":           {Column: "name", Tag: "required,max=100"},
			"payment_status": {Column: "payment_status", Tag: "payment_status"},
			"csv_uploaded":   {Column: "csv_uploaded", Tag: "boolean", Parse: parseBool},
		},
	}
}

// ProductView lists every catalog line across tenants
func ProductView(store repository.TableStore[model.Product], users repository.UserRepository) *Resource[model.Product] {
	fields := map[string]Field{
		"produit":    {Column: "name", Tag: "required,max=255"},
		"ppv":        {Column: "sale_price", Tag: "max=100"},
		"pph":        {Column: "purchase_price", Tag: "max=100"},
		"code_barre": {Column: "barcode", Tag: "max=100", Parse: trimmed},
	}

	creatable := map[string]Field{"user_id": {Column: "user_id", Tag: "required,uuid"}}
	for k, v := range fields {
		creatable[k] = v
	}

	return &Resource[model.Product]{
		Path:    "products",
		Title:   "Products",
		Store:   store,
		Can:     Capabilities{Create: true, Edit: true, Export: true},
		Access:  IsAdmin,
		Columns: []string{"id", "user_id", "produit", "ppv", "pph", "code_barre", "created_at"},
		Project: func(p *model.Product) map[string]interface{} {
			return map[string]interface{}{
				"id":         p.ID.String(),
				"user_id":    p.UserID.String(),
				"produit":    p.Name,
				"ppv":        p.SalePrice,
				"pph":        p.PurchasePrice,
				"code_barre": p.Barcode,
				"created_at": p.CreatedAt,
			}
		},
		Editable:  fields,
		Creatable: creatable,
		Build: func(values map[string]interface{}) (*model.Product, error) {
			raw, _ := values["user_id"].(string)
			userID, err := uuid.Parse(raw)
			if err != nil {
				return nil, &service.Error{Kind: service.ErrValidation, Message: "Field 'user_id' is required"}
			}
			if _, err := users.FindByID(userID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, &service.Error{Kind: service.ErrValidation, Message: "Field 'user_id' does not reference a user"}
				}
				return nil, fmt.Errorf("load owner: %w", err)
			}

			str := func(col string) string {
				s, _ := values[col].(string)
				return s
			}
			name := str("name")
			if name == "" {
				return nil, &service.Error{Kind: service.ErrValidation, Message: "Field 'produit' is required"}
			}
			return &model.Product{
				UserID:        userID,
				Name:          name,
				SalePrice:     str("sale_price"),
				PurchasePrice: str("purchase_price"),
				Barcode:       str("barcode"),
			}, nil
		},
	}
}

func parseBool(raw string) (interface{}, error) {
	return strconv.ParseBool(raw)
}

func trimmed(raw string) (interface{}, error) {
	return strings.TrimSpace(raw), nil
}
