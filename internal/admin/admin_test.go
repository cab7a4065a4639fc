package admin_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-price-scanner/internal/admin"
	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"
	"go-price-scanner/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConsoleApp(db *gorm.DB, as *model.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if as != nil {
			middleware.SetIdentity(c, &service.Identity{UserID: as.ID, Email: as.Email, Name: as.Name, IsAdmin: as.IsAdmin})
		}
		return c.Next()
	})

	console := admin.NewConsole("/admin", admin.IsAdmin,
		admin.UserView(repository.NewTableStore[model.User](db, "created_at")),
		admin.ProductView(repository.NewTableStore[model.Product](db, "created_at"), repository.NewUserRepo(db)),
	)
	console.Register(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, contentType, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

const form = "application/x-www-form-urlencoded"

func TestConsole_HiddenFromNonAdmins(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@example.com", "pw", false)

	for name, app := range map[string]*fiber.App{
		"anonymous": newConsoleApp(db, nil),
		"non-admin": newConsoleApp(db, user),
	} {
		t.Run(name, func(t *testing.T) {
			for _, target := range []string{"/admin", "/admin/users", "/admin/products", "/admin/products/export", "/admin/users/" + user.ID.String()} {
				status, _ := do(t, app, "GET", target, "", "")
				assert.Equal(t, 404, status, target)
			}
			status, _ := do(t, app, "PATCH", "/admin/users/"+user.ID.String(), form, "payment_status=Paid")
			assert.Equal(t, 404, status)
		})
	}

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, model.PaymentPending, reloaded.PaymentStatus)
}

func TestConsole_Index(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	app := newConsoleApp(db, root)

	status, body := do(t, app, "GET", "/admin", "", "")
	require.Equal(t, 200, status)
	assert.Contains(t, body, `"/admin/users"`)
	assert.Contains(t, body, `"/admin/products"`)
	assert.Contains(t, body, `"/dashboard"`)
	assert.Contains(t, body, `"/logout"`)
}

func TestUserView_ListHidesCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	testutil.CreateUser(t, db, "user@example.com", "secret", false)
	app := newConsoleApp(db, root)

	status, body := do(t, app, "GET", "/admin/users", "", "")
	require.Equal(t, 200, status)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "token_version")
	assert.NotContains(t, body, "$2a$")

	var out struct {
		Rows []map[string]interface{} `json:"rows"`
		Can  admin.Capabilities       `json:"can"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Len(t, out.Rows, 2)
	assert.Equal(t, admin.Capabilities{Edit: true}, out.Can)
}

func TestUserView_EditPaymentStatus(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	user := testutil.CreateUser(t, db, "user@example.com", "pw", false)
	app := newConsoleApp(db, root)
	target := "/admin/users/" + user.ID.String()

	status, body := do(t, app, "PATCH", target, form, "payment_status=Paid")
	require.Equal(t, 200, status, body)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, model.PaymentPaid, reloaded.PaymentStatus)

	status, _ = do(t, app, "PATCH", target, "application/json", `{"csv_uploaded": true}`)
	require.Equal(t, 200, status)
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.CSVUploaded)
}

func TestUserView_RejectsBadEdits(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	user := testutil.CreateUser(t, db, "user@example.com", "pw", false)
	app := newConsoleApp(db, root)
	target := "/admin/users/" + user.ID.String()

	tests := []struct {
		name string
		body string
	}{
		{"unknown status", "payment_status=Gold"},
		{"email is read-only", "email=other@example.com"},
		{"role is read-only", "is_admin=true"},
		{"password is read-only", "password=x"},
		{"empty name", "name="},
		{"not a bool", "csv_uploaded=maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, "PATCH", target, form, tt.body)
			assert.Equal(t, 400, status)
		})
	}

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, "user@example.com", reloaded.Email)
	assert.False(t, reloaded.IsAdmin)
	assert.Equal(t, model.PaymentPending, reloaded.PaymentStatus)
}

func TestUserView_DisabledCapabilities(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	user := testutil.CreateUser(t, db, "user@example.com", "pw", false)
	app := newConsoleApp(db, root)

	status, _ := do(t, app, "DELETE", "/admin/users/"+user.ID.String(), "", "")
	assert.Equal(t, 405, status)
	status, _ = do(t, app, "POST", "/admin/users", form, "name=x&email=x@example.com")
	assert.Equal(t, 405, status)
	status, _ = do(t, app, "GET", "/admin/users/export", "", "")
	assert.Equal(t, 405, status)

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestUserView_MissingRecord(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	app := newConsoleApp(db, root)

	status, _ := do(t, app, "GET", "/admin/users/6f1c2c0e-8b4a-4f4e-9d59-2f7f0d8c0a11", "", "")
	assert.Equal(t, 404, status)
	status, _ = do(t, app, "PATCH", "/admin/users/6f1c2c0e-8b4a-4f4e-9d59-2f7f0d8c0a11", form, "name=ghost")
	assert.Equal(t, 404, status)
	status, _ = do(t, app, "GET", "/admin/users/not-a-uuid", "", "")
	assert.Equal(t, 404, status)
}

func TestProductView_CreateEditExport(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	owner := testutil.CreateUser(t, db, "user@example.com", "pw", false)
	app := newConsoleApp(db, root)

	status, body := do(t, app, "POST", "/admin/products", form,
		"user_id="+owner.ID.String()+"&produit=Aspirin&ppv=12.50&pph=9.80&code_barre=+1234+")
	require.Equal(t, 201, status, body)

	var p model.Product
	require.NoError(t, db.First(&p, "user_id = ?", owner.ID).Error)
	assert.Equal(t, "Aspirin", p.Name)
	assert.Equal(t, "1234", p.Barcode)

	status, _ = do(t, app, "PATCH", "/admin/products/"+p.ID.String(), "application/json", `{"ppv": "13.00"}`)
	require.Equal(t, 200, status)
	require.NoError(t, db.First(&p, "id = ?", p.ID).Error)
	assert.Equal(t, "13.00", p.SalePrice)

	status, _ = do(t, app, "PATCH", "/admin/products/"+p.ID.String(), form, "user_id="+root.ID.String())
	assert.Equal(t, 400, status)

	status, _ = do(t, app, "DELETE", "/admin/products/"+p.ID.String(), "", "")
	assert.Equal(t, 405, status)

	status, body = do(t, app, "GET", "/admin/products/export", "", "")
	require.Equal(t, 200, status)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,user_id,produit,ppv,pph,code_barre,created_at", lines[0])
	assert.Contains(t, lines[1], "Aspirin,13.00,9.80,1234")
}

func TestProductView_CreateRequiresExistingOwner(t *testing.T) {
	db := testutil.NewDB(t)
	root := testutil.CreateUser(t, db, "admin@example.com", "pw", true)
	app := newConsoleApp(db, root)

	status, _ := do(t, app, "POST", "/admin/products", form,
		"user_id=6f1c2c0e-8b4a-4f4e-9d59-2f7f0d8c0a11&produit=Aspirin")
	assert.Equal(t, 400, status)
	status, _ = do(t, app, "POST", "/admin/products", form, "produit=Aspirin")
	assert.Equal(t, 400, status)

	var count int64
	db.Model(&model.Product{}).Count(&count)
	assert.Zero(t, count)
}
