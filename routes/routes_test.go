package routes

import (
	"aftech-backend/config"
	"aftech-backend/database"
	"aftech-backend/migration"
	"aftech-backend/models"
	"aftech-backend/services"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	Data     json.RawMessage        `json:"data"`
	Errors   map[string]string      `json:"errors"`
	UniqueID string                 `json:"unique_id"`
	Access   string                 `json:"access_token"`
	User     map[string]interface{} `json:"user"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.MAIN_ROUTES = "/api/v1"
	config.JWTSecret = "routes-test"
	config.JWTExpiration = 3600
	config.JWTRefreshExpiration = 7200

	db, err := database.OpenSQLite(database.SQLiteMemoryDSN)
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	app := fiber.New()
	SetupRoutes(app, Dependencies{DB: db})
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username, role string, regionID *uint) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Password: string(hash), Email: username + "@example.com", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID, Role: role, RegionID: regionID}).Error)
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, env := call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	require.NotEmpty(t, env.Access)
	return env.Access
}

func createNamed(t *testing.T, app *fiber.App, token, path, name string) uint {
	t.Helper()
	status, env := call(t, app, http.MethodPost, path, token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var record struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &record))
	return record.ID
}

func TestAuthFlow(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin", models.RoleAdmin, nil)

	status, env := call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", env.Message)

	status, _ = call(t, app, http.MethodGet, "/api/v1/regions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := login(t, app, "admin")
	status, _ = call(t, app, http.MethodGet, "/api/v1/auth/is-logged-in", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodGet, "/api/v1/core/user-profile/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var profile services.ProfileView
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Admin", profile.RoleDisplay)

	status, _ = call(t, app, http.MethodGet, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/regions", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestJobCardLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin", models.RoleAdmin, nil)
	token := login(t, app, "admin")

	region := createNamed(t, app, token, "/api/v1/regions", "Gauteng")
	jobType := createNamed(t, app, token, "/api/v1/job-types", "Service")
	agent := createNamed(t, app, token, "/api/v1/support-agents", "Thandi")

	status, env := call(t, app, http.MethodPost, "/api/v1/technicians", token, map[string]interface{}{
		"name": "Andile Dube", "initials": "ad", "region": region,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var technician models.Technician
	require.NoError(t, json.Unmarshal(env.Data, &technician))

	status, env = call(t, app, http.MethodPost, "/api/v1/customers", token, map[string]interface{}{
		"name": "Acme Logistics", "region": region,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var customer models.Customer
	require.NoError(t, json.Unmarshal(env.Data, &customer))

	body := map[string]interface{}{
		"region": region, "technician": technician.ID, "customer": customer.ID,
		"job_type": jobType, "support_agent": agent,
	}

	status, env = call(t, app, http.MethodPost, "/api/v1/jobcards", token, body)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "JobCardCounter is not set up.", env.Message)

	_, err := services.InitCounter(db, models.DefaultJobCardSeed)
	require.NoError(t, err)

	status, env = call(t, app, http.MethodPost, "/api/v1/jobcards", token, body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, "JobCard created successfully.", env.Message)
	assert.Equal(t, "AD68746", env.UniqueID)

	status, env = call(t, app, http.MethodPost, "/api/v1/jobcards", token, body)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "AD68747", env.UniqueID)

	status, env = call(t, app, http.MethodGet, "/api/v1/total-jobcards", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":2}`, string(env.Data))

	status, env = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/regions/%d", region), token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)

	status, env = call(t, app, http.MethodPost, "/api/v1/jobcards", token, map[string]interface{}{"region": region})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "technician")
}

func TestAdminRoutesRequireRole(t *testing.T) {
	app, db := newTestApp(t)
	region := models.Region{Name: "Gauteng"}
	require.NoError(t, db.Create(&region).Error)
	createUser(t, db, "manager", models.RoleRegionalManager, &region.ID)
	token := login(t, app, "manager")

	status, _ := call(t, app, http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/history", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/customers/export", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/customers", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCustomerImportUpload(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin", models.RoleSuperAdmin, nil)
	require.NoError(t, db.Create(&models.Region{Name: "Gauteng"}).Error)
	token := login(t, app, "admin")

	sheet := excelize.NewFile()
	require.NoError(t, sheet.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "region"}))
	require.NoError(t, sheet.SetSheetRow("Sheet1", "A2", &[]interface{}{"Acme Logistics", "Gauteng"}))
	require.NoError(t, sheet.SetSheetRow("Sheet1", "A3", &[]interface{}{"Northwind", "North"}))
	var workbook bytes.Buffer
	_, err := sheet.WriteTo(&workbook)
	require.NoError(t, err)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "customers.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	status, env := send(t, app, req)
	require.Equal(t, http.StatusOK, status, env.Message)

	var result services.CustomerImportResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, []string{"Row 3: region 'North' not found (customer: Northwind)"}, result.SkippedItems)

	status, env = call(t, app, http.MethodGet, "/api/v1/history?entity=customer", token, nil)
	require.Equal(t, http.StatusOK, status)
	var history []models.ChangeHistory
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 1)
}

func TestDeleteStockStatus(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin", models.RoleAdmin, nil)
	token := login(t, app, "admin")

	id := createNamed(t, app, token, "/api/v1/inventory/stock-statuses", "Quarantined")

	status, env := call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/inventory/stock-statuses/%d", id), token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "Stock status deleted successfully", env.Message)

	var count int64
	require.NoError(t, db.Model(&models.StockStatus{}).Where("id = ?", id).Count(&count).Error)
	assert.Zero(t, count)

	status, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/inventory/stock-statuses/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
