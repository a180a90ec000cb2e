package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/pkg/token"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

// Dependencies adalah objek bersama yang dibutuhkan semua kelompok route.
type Dependencies struct {
	DB          *gorm.DB
	Config      config.AppConfig
	Tokens      *token.Manager
	Permissions *usecase.PermissionService
	Storage     storage.Storage
	Events      notify.Publisher
	Now         usecase.Clock
	Sessions    *session.Store // session panel admin, dibuat dari Config.Session bila nil
}

func (d *Dependencies) location() *time.Location {
	return d.Config.Location()
}

func (d *Dependencies) kalender() *usecase.Kalender {
	return usecase.NewKalender(
		repository.NewJamKerjaRepository(d.DB),
		repository.NewHariLiburRepository(d.DB),
		d.Config.Absensi,
	)
}

func (d *Dependencies) auth() fiber.Handler {
	return middleware.Auth(d.Tokens, d.Permissions)
}

func (d *Dependencies) permission(name string) fiber.Handler {
	return middleware.Permission(d.Permissions, name)
}

// Setup mendaftarkan seluruh route API dan panel admin.
func Setup(app *fiber.App, d *Dependencies) {
	SetupAuthRoutes(app, d)
	SetupPegawaiRoutes(app, d)
	SetupMasterDataRoutes(app, d)
	SetupAbsensiRoutes(app, d)
	SetupCutiRoutes(app, d)
	SetupEvaluasiRoutes(app, d)
	SetupSlipGajiRoutes(app, d)
	SetupRoleRoutes(app, d)
	SetupDashboardRoutes(app, d)
	SetupReportRoutes(app, d)
	SetupPanelRoutes(app, d)
}
