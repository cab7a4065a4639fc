package service_test

import (
	"fmt"
	"testing"

	"go-price-scanner/internal/barcode"
	"go-price-scanner/internal/importer"
	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"
	"go-price-scanner/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecoder struct {
	code string
	err  error
}

func (f fakeDecoder) Decode([]byte) (string, error) {
	return f.code, f.err
}

func TestBarcodeService_DecodeImage(t *testing.T) {
	tests := []struct {
		name    string
		decoder fakeDecoder
		want    string
		wantErr error
	}{
		{name: "found", decoder: fakeDecoder{code: "1234"}, want: "1234"},
		{name: "no barcode", decoder: fakeDecoder{err: barcode.ErrNotFound}, wantErr: service.ErrNotFound},
		{name: "bad image", decoder: fakeDecoder{err: fmt.Errorf("%w: png", barcode.ErrUnreadableImage)}, wantErr: service.ErrImageDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewBarcodeService(tt.decoder, nil)
			got, err := svc.DecodeImage([]byte("img"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBarcodeService_Lookup(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := service.NewCatalogService(repository.NewProductRepo(db), repository.NewUserRepo(db), db)
	user := testutil.CreateUser(t, db, "alice@example.com", "pw", false)
	require.NoError(t, catalog.ReplaceProducts(user.ID, []importer.Row{{Name: "Aspirin", SalePrice: "10.5", PurchasePrice: "8.0", Barcode: "1234"}}))

	svc := service.NewBarcodeService(barcode.NewDecoder(), catalog)

	resp, err := svc.Lookup(user.ID, "1234")
	require.NoError(t, err)
	assert.Equal(t, &model.LookupResponse{Name: "Aspirin", SalePrice: "10.5", PurchasePrice: "8.0"}, resp)

	_, err = svc.Lookup(user.ID, "0000")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
