package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/cache"
	"sdm-yayasan-backend/internal/pkg/token"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

type LoginRequest struct {
	Email         string `json:"email" form:"email" validate:"required,email"`
	Password      string `json:"password" form:"password" validate:"required"`
	DeviceUUID    string `json:"uuid" validate:"omitempty,max=100"`
	Brand         string `json:"brand" validate:"omitempty,max=100"`
	Series        string `json:"series" validate:"omitempty,max=100"`
	FirebaseToken string `json:"firebase_token"`
}

type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresAt    int64       `json:"expires_at"`
	User         *model.User `json:"user"`
}

type UpdateProfileRequest struct {
	Nama         string `json:"nama" validate:"required,notblank,max=150"`
	TempatLahir  string `json:"tempat_lahir" validate:"omitempty,max=100"`
	TanggalLahir string `json:"tanggal_lahir" validate:"omitempty,tanggal"`
	JenisKelamin string `json:"jenis_kelamin" validate:"omitempty,oneof=L P"`
	Agama        string `json:"agama" validate:"omitempty,max=20"`
	Alamat       string `json:"alamat"`
	NoHP         string `json:"no_hp" validate:"omitempty,max=20,numeric"`
}

type ChangePasswordRequest struct {
	PasswordLama       string `json:"password_lama" validate:"required"`
	PasswordBaru       string `json:"password_baru" validate:"required,min=8"`
	KonfirmasiPassword string `json:"konfirmasi_password" validate:"required,eqfield=PasswordBaru"`
}

type AuthUsecase struct {
	users       repository.UserRepository
	tokens      *token.Manager
	permissions *PermissionService
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Manager, permissions *PermissionService) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, permissions: permissions}
}

var errLoginGagal = apperror.Unauthorized("Email atau password salah")

// authenticate dipakai bersama oleh login API dan login panel.
func (u *AuthUsecase) authenticate(email, password string) (*model.User, error) {
	user, err := u.users.FindByEmail(email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errLoginGagal
		}
		return nil, internal(err, "find user by email")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errLoginGagal
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("Akun Anda tidak aktif. Hubungi admin.")
	}
	return user, nil
}

func (u *AuthUsecase) Login(req LoginRequest) (*LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := u.authenticate(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// Daftarkan perangkat untuk push notification
	if req.DeviceUUID != "" {
		device := &model.Device{
			UserID:        user.ID,
			UUID:          req.DeviceUUID,
			Brand:         req.Brand,
			Series:        req.Series,
			FirebaseToken: req.FirebaseToken,
		}
		if err := u.users.UpsertDevice(device); err != nil {
			return nil, internal(err, "upsert device")
		}
	}

	return u.issue(user)
}

func (u *AuthUsecase) Refresh(refreshToken string) (*LoginResponse, error) {
	claims, err := u.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Refresh token tidak valid atau kadaluwarsa")
	}
	user, err := u.users.FindByID(claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.Unauthorized("Akun tidak ditemukan")
		}
		return nil, internal(err, "find user")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("Akun Anda tidak aktif. Hubungi admin.")
	}
	return u.issue(user)
}

func (u *AuthUsecase) issue(user *model.User) (*LoginResponse, error) {
	access, claims, err := u.tokens.GenerateAccessToken(*user)
	if err != nil {
		return nil, internal(err, "generate access token")
	}
	refresh, _, err := u.tokens.GenerateRefreshToken(*user)
	if err != nil {
		return nil, internal(err, "generate refresh token")
	}
	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresAt:    claims.ExpiresAt.Unix(),
		User:         user,
	}, nil
}

// AdminLogin memeriksa kredensial untuk panel. Hanya user dengan izin akses panel yang boleh masuk.
func (u *AuthUsecase) AdminLogin(ctx context.Context, email, password string) (*model.User, error) {
	if fields := validation.Fields(LoginRequest{Email: email, Password: password}); fields != nil {
		return nil, apperror.Validation(fields)
	}
	user, err := u.authenticate(email, password)
	if err != nil {
		return nil, err
	}
	allowed, err := u.permissions.Allowed(ctx, user.ID, model.PermAksesPanelAdmin)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.Forbidden("Anda tidak memiliki akses ke panel admin")
	}
	return user, nil
}

func (u *AuthUsecase) Profile(userID uint) (*model.User, error) {
	user, err := u.users.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User tidak ditemukan", "find user")
	}
	return user, nil
}

// UpdateProfile hanya mengubah data pribadi. Data kepegawaian diubah oleh admin.
func (u *AuthUsecase) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := u.Profile(userID)
	if err != nil {
		return nil, err
	}

	user.Nama = req.Nama
	if user.ProfilePribadi == nil {
		return nil, apperror.BadRequest("Profil pribadi belum dibuat. Hubungi admin.")
	}
	p := user.ProfilePribadi
	p.TempatLahir = req.TempatLahir
	p.TanggalLahir = req.TanggalLahir
	p.JenisKelamin = req.JenisKelamin
	p.Agama = req.Agama
	p.Alamat = req.Alamat
	p.NoHP = req.NoHP

	if err := u.users.UpdateWithProfiles(user, nil, false); err != nil {
		return nil, internal(err, "update profile")
	}
	return u.Profile(userID)
}

func (u *AuthUsecase) ChangePassword(userID uint, req ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	user, err := u.Profile(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.PasswordLama)); err != nil {
		return apperror.Field("password_lama", "password lama tidak sesuai")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PasswordBaru), bcrypt.DefaultCost)
	if err != nil {
		return internal(err, "hash password")
	}
	if err := u.users.UpdatePassword(userID, string(hashed)); err != nil {
		return internal(err, "update password")
	}
	return nil
}

// PermissionService memuat role dan permission user dari database, dengan cache opsional.
// Role di JWT tidak dipakai untuk otorisasi agar pencabutan role dan penonaktifan akun langsung berlaku.
type PermissionService struct {
	users repository.UserRepository
	cache cache.PermissionCache
}

func NewPermissionService(users repository.UserRepository, c cache.PermissionCache) *PermissionService {
	if c == nil {
		c = cache.Noop{}
	}
	return &PermissionService{users: users, cache: c}
}

// Akses menolak user yang sudah dihapus atau nonaktif dengan 401.
func (s *PermissionService) Akses(ctx context.Context, userID uint) (*cache.Akses, error) {
	if akses, ok := s.cache.Get(ctx, userID); ok {
		return &akses, nil
	}
	user, err := s.users.FindWithRoles(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.Unauthorized("Akun tidak ditemukan")
		}
		return nil, internal(err, "load user akses")
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("Akun Anda tidak aktif. Hubungi admin.")
	}
	perms, err := s.users.PermissionNames(userID)
	if err != nil {
		return nil, internal(err, "load permissions")
	}
	akses := cache.Akses{Roles: user.RoleNames(), Permissions: perms}
	s.cache.Set(ctx, userID, akses)
	return &akses, nil
}

func (s *PermissionService) Permissions(ctx context.Context, userID uint) ([]string, error) {
	akses, err := s.Akses(ctx, userID)
	if err != nil {
		return nil, err
	}
	return akses.Permissions, nil
}

// Allowed true bila user super_admin atau salah satu role-nya punya permission tersebut.
func (s *PermissionService) Allowed(ctx context.Context, userID uint, permission string) (bool, error) {
	akses, err := s.Akses(ctx, userID)
	if err != nil {
		return false, err
	}
	return akses.HasRole(model.RoleSuperAdmin) || akses.Can(permission), nil
}

// Invalidate dipanggil setiap kali role, permission, atau status user berubah.
func (s *PermissionService) Invalidate(ctx context.Context) {
	s.cache.Flush(ctx)
}
