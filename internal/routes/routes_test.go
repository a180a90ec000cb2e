package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/cache"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/pkg/token"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/testutil"
	"sdm-yayasan-backend/internal/usecase"
)

// Senin, 3 Maret 2025 pukul 07:05
var fixedNow = time.Date(2025, time.March, 3, 7, 5, 0, 0, time.UTC)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.PrepareDB(t)

	store, err := storage.NewLocalStorage(t.TempDir(), "/storage")
	require.NoError(t, err)

	cfg := config.AppConfig{
		Timezone:    "UTC",
		NamaYayasan: "Yayasan Test",
		JWT: config.JWTConfig{
			SecretKey:       []byte("test-secret"),
			Issuer:          "sdm-yayasan",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Session: config.SessionConfig{Expiration: time.Hour},
		Absensi: config.AbsensiConfig{JamMasuk: "07:00", JamPulang: "15:00", ToleransiMenit: 15, RadiusMeter: 500},
		Cuti:    config.CutiConfig{KuotaTahunan: 12},
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	Setup(app, &Dependencies{
		DB:          db,
		Config:      cfg,
		Tokens:      token.NewManager(cfg.JWT),
		Permissions: usecase.NewPermissionService(repository.NewUserRepository(db), cache.NewMemory()),
		Storage:     store,
		Events:      notify.Discard{},
		Now:         func() time.Time { return fixedNow },
	})
	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": email, "password": "rahasia123"})
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "Ani", "ani@yayasan.sch.id", "3201000000000001", "G-001")
	testutil.CreateUser(t, s.db, "Budi", "budi@yayasan.sch.id", "3201000000000002", "G-002", testutil.Inactive())

	assert.NotEmpty(t, s.login(t, "ani@yayasan.sch.id"))

	status, body := s.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": "ani@yayasan.sch.id", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Email atau password salah", body["error"])

	status, _ = s.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": "budi@yayasan.sch.id", "password": "rahasia123"})
	assert.NotEqual(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": "bukan-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "email")
	assert.Contains(t, body["errors"], "password")
}

func TestProfileRequiresToken(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token tidak ditemukan", body["error"])

	testutil.CreateUser(t, s.db, "Ani", "ani@yayasan.sch.id", "3201000000000001", "G-001")
	status, body = s.do(t, http.MethodGet, "/api/profile", s.login(t, "ani@yayasan.sch.id"), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ani", body["data"].(map[string]interface{})["nama"])
}

func TestCheckInFlow(t *testing.T) {
	s := newTestServer(t)
	guru := testutil.CreateRole(t, s.db, model.RoleGuru)
	tk := testutil.CreateTempatKerja(t, s.db, "SD Yayasan", -6.2, 106.8)
	testutil.CreateUser(t, s.db, "Ani", "ani@yayasan.sch.id", "3201000000000001", "G-001",
		testutil.WithRoles(guru), testutil.WithTempatKerja(tk.ID))
	tokenAni := s.login(t, "ani@yayasan.sch.id")

	status, _ := s.do(t, http.MethodPost, "/api/absensi/check-out", tokenAni, fiber.Map{"latitude": -6.2, "longitude": 106.8})
	assert.NotEqual(t, http.StatusOK, status, "check-out tanpa check-in ditolak")

	status, body := s.do(t, http.MethodPost, "/api/absensi/check-in", tokenAni, fiber.Map{"latitude": -6.3, "longitude": 106.8})
	assert.Equal(t, http.StatusBadRequest, status, "sekitar 11 km dari tempat kerja")
	assert.Contains(t, body["error"], "luar radius")

	status, body = s.do(t, http.MethodPost, "/api/absensi/check-in", tokenAni, fiber.Map{"latitude": -6.2001, "longitude": 106.8001})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, model.StatusHadir, body["data"].(map[string]interface{})["status"])

	status, _ = s.do(t, http.MethodPost, "/api/absensi/check-in", tokenAni, fiber.Map{"latitude": -6.2, "longitude": 106.8})
	assert.Equal(t, http.StatusConflict, status)

	var count int64
	s.db.Model(&model.Absensi{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAdminRoutesRequirePermission(t *testing.T) {
	s := newTestServer(t)
	guru := testutil.CreateRole(t, s.db, model.RoleGuru)
	hrd := testutil.CreateRole(t, s.db, model.RoleHRD, model.PermKelolaPegawai, model.PermKelolaMasterData)
	testutil.CreateUser(t, s.db, "Ani", "ani@yayasan.sch.id", "3201000000000001", "G-001", testutil.WithRoles(guru))
	testutil.CreateUser(t, s.db, "Hana", "hana@yayasan.sch.id", "3201000000000002", "H-001", testutil.WithRoles(hrd))

	status, _ := s.do(t, http.MethodGet, "/api/admin/pegawai", s.login(t, "ani@yayasan.sch.id"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	tokenHana := s.login(t, "hana@yayasan.sch.id")
	status, body := s.do(t, http.MethodGet, "/api/admin/pegawai?per_page=1", tokenHana, nil)
	require.Equal(t, http.StatusOK, status)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total"])
	assert.Equal(t, float64(1), meta["per_page"])
	assert.Len(t, body["data"], 1)

	status, body = s.do(t, http.MethodPost, "/api/admin/master/departemen", tokenHana, fiber.Map{"nama": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "nama")

	status, _ = s.do(t, http.MethodPost, "/api/admin/master/departemen", tokenHana, fiber.Map{"nama": "Kurikulum"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestTokenLamaMengikutiPerubahanAkses(t *testing.T) {
	s := newTestServer(t)
	superAdmin := testutil.CreateRole(t, s.db, model.RoleSuperAdmin)
	guru := testutil.CreateRole(t, s.db, model.RoleGuru)
	tk := testutil.CreateTempatKerja(t, s.db, "SD Yayasan", -6.2, 106.8)
	testutil.CreateUser(t, s.db, "Root", "root@yayasan.sch.id", "3201000000000001", "A-001", testutil.WithRoles(superAdmin))
	rina := testutil.CreateUser(t, s.db, "Rina", "rina@yayasan.sch.id", "3201000000000002", "A-002", testutil.WithRoles(superAdmin))
	ani := testutil.CreateUser(t, s.db, "Ani", "ani@yayasan.sch.id", "3201000000000003", "G-001",
		testutil.WithRoles(guru), testutil.WithTempatKerja(tk.ID))

	tokenRoot := s.login(t, "root@yayasan.sch.id")
	tokenRina := s.login(t, "rina@yayasan.sch.id")
	tokenAni := s.login(t, "ani@yayasan.sch.id")

	status, _ := s.do(t, http.MethodGet, "/api/admin/pegawai", tokenRina, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/profile", tokenAni, nil)
	require.Equal(t, http.StatusOK, status)

	// seluruh role Rina dicabut, tokennya masih berlaku secara JWT
	status, body := s.do(t, http.MethodPut, "/api/admin/pegawai/"+idString(rina.ID)+"/roles", tokenRoot, fiber.Map{"role_ids": []uint{}})
	require.Equal(t, http.StatusOK, status, body)
	status, _ = s.do(t, http.MethodGet, "/api/admin/pegawai", tokenRina, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = s.do(t, http.MethodPut, "/api/admin/pegawai/"+idString(ani.ID), tokenRoot, fiber.Map{
		"nama": "Ani", "email": "ani@yayasan.sch.id", "nik": "3201000000000003", "nip": "G-001", "is_active": false,
	})
	require.Equal(t, http.StatusOK, status, body)

	status, body = s.do(t, http.MethodPost, "/api/absensi/check-in", tokenAni, fiber.Map{"latitude": -6.2001, "longitude": 106.8001})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body["error"], "tidak aktif")
	status, _ = s.do(t, http.MethodGet, "/api/profile", tokenAni, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var count int64
	s.db.Model(&model.Absensi{}).Count(&count)
	assert.Zero(t, count)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/tidak-ada", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}

func (s *testServer) form(t *testing.T, path, cookie string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) page(t *testing.T, path, cookie string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "admin_session" {
			return c.Name + "=" + c.Value
		}
	}
	return ""
}

func TestAdminPanel(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateRole(t, s.db, model.RoleAdmin, model.AllPermissions()...)
	guru := testutil.CreateRole(t, s.db, model.RoleGuru)
	testutil.CreateUser(t, s.db, "Admin", "admin@yayasan.sch.id", "3201000000000001", "A-001", testutil.WithRoles(admin))
	ani := testutil.CreateUser(t, s.db, "Ani", "ani@yayasan.sch.id", "3201000000000002", "G-001", testutil.WithRoles(guru))
	budi := testutil.CreateUser(t, s.db, "Budi", "budi@yayasan.sch.id", "3201000000000003", "G-002", testutil.WithRoles(guru))

	resp, _ := s.page(t, "/admin", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))

	// guru tidak punya izin panel
	resp = s.form(t, "/admin/login", "", url.Values{"email": {"ani@yayasan.sch.id"}, "password": {"rahasia123"}})
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "tidak memiliki akses ke panel admin")

	resp = s.form(t, "/admin/login", "", url.Values{"email": {"admin@yayasan.sch.id"}, "password": {"rahasia123"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)

	resp, html := s.page(t, "/admin", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Pegawai aktif")

	_, html = s.page(t, "/admin/pegawai", cookie)
	assert.Contains(t, html, "Budi")

	ids := url.Values{"ids": {strings.Join([]string{idString(ani.ID), idString(budi.ID)}, ",")}}
	resp = s.form(t, "/admin/pegawai/bulk-delete", cookie, ids)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/pegawai", resp.Header.Get(fiber.HeaderLocation))

	_, html = s.page(t, "/admin/pegawai", cookie)
	assert.Contains(t, html, "2 pegawai berhasil dihapus")
	assert.NotContains(t, html, "Budi")

	// flash hanya tampil sekali
	_, html = s.page(t, "/admin/pegawai", cookie)
	assert.NotContains(t, html, "berhasil dihapus")

	resp = s.form(t, "/admin/logout", cookie, url.Values{})
	assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))
	resp, _ = s.page(t, "/admin", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
