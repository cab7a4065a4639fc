package service_test

import (
	"errors"
	"strings"
	"testing"

	"go-price-scanner/internal/importer"
	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"
	"go-price-scanner/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (service.CatalogService, *gorm.DB) {
	db := testutil.NewDB(t)
	return service.NewCatalogService(repository.NewProductRepo(db), repository.NewUserRepo(db), db), db
}

func rows(codes ...string) []importer.Row {
	out := make([]importer.Row, 0, len(codes))
	for _, c := range codes {
		out = append(out, importer.Row{Name: "P" + c, SalePrice: "1", PurchasePrice: "1", Barcode: c})
	}
	return out
}

func TestCatalogService_ImportScenario(t *testing.T) {
	svc, db := newCatalogService(t)
	user := testutil.CreateUser(t, db, "alice@example.com", "pw", false)

	n, err := svc.ImportCSV(user.ID, strings.NewReader("PRODUIT,PPV,PPH,Code barre\nAspirin,10.5,8.0, 1234 \n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := svc.FindByBarcode(user.ID, "1234")
	require.NoError(t, err)
	resp := p.ToLookupResponse()
	assert.Equal(t, model.LookupResponse{Name: "Aspirin", SalePrice: "10.5", PurchasePrice: "8.0"}, resp)

	view, err := svc.Dashboard(user.ID)
	require.NoError(t, err)
	assert.True(t, view.CSVUploaded)
	assert.Len(t, view.Products, 1)
}

func TestCatalogService_ReplaceIsNotAUnion(t *testing.T) {
	svc, db := newCatalogService(t)
	user := testutil.CreateUser(t, db, "alice@example.com", "pw", false)

	require.NoError(t, svc.ReplaceProducts(user.ID, rows("1", "2", "3")))
	require.NoError(t, svc.ReplaceProducts(user.ID, rows("4", "5")))

	products, err := svc.ListProducts(user.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)

	_, err = svc.FindByBarcode(user.ID, "1")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCatalogService_ReplaceWithEmptyFileClearsCatalog(t *testing.T) {
	svc, db := newCatalogService(t)
	user := testutil.CreateUser(t, db, "alice@example.com", "pw", false)

	require.NoError(t, svc.ReplaceProducts(user.ID, rows("1", "2")))
	n, err := svc.ImportCSV(user.ID, strings.NewReader("PRODUIT,PPV,PPH,Code barre\n"))
	require.NoError(t, err)
	assert.Zero(t, n)

	products, err := svc.ListProducts(user.ID)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogService_FailedReplaceRollsBack(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := testutil.CreateUser(t, db, "alice@example.com", "pw", false)
	bob := testutil.CreateUser(t, db, "bob@example.com", "pw", false)
	require.NoError(t, svc.ReplaceProducts(alice.ID, rows("1", "2", "3")))

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_products", func(tx *gorm.DB) {
		if tx.Statement.Table == "products" {
			tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	err = svc.ReplaceProducts(alice.ID, rows("4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrStorage)

	products, err := svc.ListProducts(alice.ID)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	err = svc.ReplaceProducts(bob.ID, rows("9"))
	assert.ErrorIs(t, err, service.ErrStorage)
	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", bob.ID).Error)
	assert.False(t, stored.CSVUploaded)
}

func TestCatalogService_MalformedImportKeepsCatalog(t *testing.T) {
	svc, db := newCatalogService(t)
	user := testutil.CreateUser(t, db, "alice@example.com", "pw", false)
	require.NoError(t, svc.ReplaceProducts(user.ID, rows("1")))

	_, err := svc.ImportCSV(user.ID, strings.NewReader("PRODUIT,Code barre\nAsp\"irin,2\n"))
	assert.ErrorIs(t, err, importer.ErrMalformed)

	_, err = svc.FindByBarcode(user.ID, "1")
	assert.NoError(t, err)
}

func TestCatalogService_FindByBarcodeIsScoped(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := testutil.CreateUser(t, db, "alice@example.com", "pw", false)
	bob := testutil.CreateUser(t, db, "bob@example.com", "pw", false)

	require.NoError(t, svc.ReplaceProducts(alice.ID, []importer.Row{{Name: "Aspirin", SalePrice: "1", PurchasePrice: "1", Barcode: "777"}}))
	require.NoError(t, svc.ReplaceProducts(bob.ID, []importer.Row{{Name: "Doliprane", SalePrice: "2", PurchasePrice: "2", Barcode: "777"}}))

	p, err := svc.FindByBarcode(alice.ID, " 777 ")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", p.Name)

	p, err = svc.FindByBarcode(bob.ID, "777")
	require.NoError(t, err)
	assert.Equal(t, "Doliprane", p.Name)

	_, err = svc.FindByBarcode(alice.ID, "  ")
	assert.ErrorIs(t, err, service.ErrValidation)
}
