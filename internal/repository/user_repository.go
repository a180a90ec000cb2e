package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserFilter struct {
	Search       string `query:"search"`
	DepartemenID uint   `query:"departemen_id"`
	JabatanID    uint   `query:"jabatan_id"`
	Role         string `query:"role"`
	IsActive     *bool  `query:"is_active"`
	Pagination
}

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	FindWithRoles(id uint) (*model.User, error)
	FindByRoleName(roleName string) ([]model.User, error)
	FindByIDs(ids []uint) ([]model.User, error)
	List(filter UserFilter) ([]model.User, int64, error)
	ListActive() ([]model.User, error)
	CreateWithProfiles(user *model.User, roleIDs []uint) error
	UpdateWithProfiles(user *model.User, roleIDs []uint, syncRoles bool) error
	Update(user *model.User) error
	UpdatePassword(userID uint, hashed string) error
	Delete(id uint) error
	DeleteMany(ids []uint) (int64, error)
	EmailTaken(email string, exceptUserID uint) (bool, error)
	NIKTaken(nik string, exceptUserID uint) (bool, error)
	NIPTaken(nip string, exceptUserID uint) (bool, error)
	SyncRoles(userID uint, roleIDs []uint) error
	PermissionNames(userID uint) ([]string, error)
	UpsertDevice(device *model.Device) error
	ResetDevices(userID uint) error
	CountActive() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	// Preload Roles agar nama role langsung masuk ke token saat login
	err := r.db.Preload("Roles").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Roles").
		Preload("ProfilePribadi").
		Preload("ProfilePekerjaan.Departemen").
		Preload("ProfilePekerjaan.Jabatan").
		Preload("ProfilePekerjaan.TempatKerja").
		Preload("Devices").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindWithRoles hanya memuat role, dipakai pengecekan akses di setiap request.
func (r *userRepository) FindWithRoles(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByRoleName(roleName string) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Devices").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.nama_role = ? AND users.is_active = ?", roleName, true).
		Find(&users).Error
	return users, err
}

func (r *userRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("ProfilePekerjaan").Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) List(filter UserFilter) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{}).
		Joins("LEFT JOIN profile_pribadis ON profile_pribadis.user_id = users.id").
		Joins("LEFT JOIN profile_pekerjaans ON profile_pekerjaans.user_id = users.id")

	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(users.nama) LIKE ? OR LOWER(users.email) LIKE ? OR profile_pribadis.nik LIKE ? OR profile_pekerjaans.nip LIKE ?", p, p, p, p)
	}
	if filter.DepartemenID != 0 {
		query = query.Where("profile_pekerjaans.departemen_id = ?", filter.DepartemenID)
	}
	if filter.JabatanID != 0 {
		query = query.Where("profile_pekerjaans.jabatan_id = ?", filter.JabatanID)
	}
	if filter.Role != "" {
		query = query.Where("users.id IN (?)", r.db.Table("user_roles").
			Select("user_roles.user_id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("roles.nama_role = ?", filter.Role))
	}
	if filter.IsActive != nil {
		query = query.Where("users.is_active = ?", *filter.IsActive)
	}

	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Preload("Roles").
		Preload("ProfilePribadi").
		Preload("ProfilePekerjaan.Departemen").
		Preload("ProfilePekerjaan.Jabatan").
		Preload("ProfilePekerjaan.TempatKerja").
		Order("users.nama ASC").
		Scopes(paginate(filter.Pagination)).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) ListActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("ProfilePekerjaan.Departemen").
		Preload("ProfilePekerjaan.Jabatan").
		Where("is_active = ?", true).
		Order("nama ASC").
		Find(&users).Error
	return users, err
}

// CreateWithProfiles menyimpan user, kedua profil, dan role dalam satu transaksi.
func (r *userRepository) CreateWithProfiles(user *model.User, roleIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// profil ikut tersimpan lewat asosiasi has-one
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return err
		}
		return replaceRoles(tx, user, roleIDs)
	})
}

// UpdateWithProfiles memperbarui user dan profil. Bila salah satu gagal semuanya dibatalkan.
func (r *userRepository) UpdateWithProfiles(user *model.User, roleIDs []uint, syncRoles bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}
		if user.ProfilePribadi != nil {
			user.ProfilePribadi.UserID = user.ID
			if err := tx.Save(user.ProfilePribadi).Error; err != nil {
				return err
			}
		}
		if user.ProfilePekerjaan != nil {
			user.ProfilePekerjaan.UserID = user.ID
			if err := tx.Omit(clause.Associations).Save(user.ProfilePekerjaan).Error; err != nil {
				return err
			}
		}
		if !syncRoles {
			return nil
		}
		return replaceRoles(tx, user, roleIDs)
	})
}

func replaceRoles(tx *gorm.DB, user *model.User, roleIDs []uint) error {
	var roles []model.Role
	if len(roleIDs) == 0 {
		user.Roles = nil
		return tx.Model(user).Association("Roles").Clear()
	}
	if err := tx.Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
		return err
	}
	if err := tx.Model(user).Association("Roles").Replace(roles); err != nil {
		return err
	}
	user.Roles = roles
	return nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) UpdatePassword(userID uint, hashed string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashed).Error
}

func (r *userRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.User{}, id)
}

func (r *userRepository) DeleteMany(ids []uint) (int64, error) {
	res := r.db.Where("id IN ?", ids).Delete(&model.User{})
	return res.RowsAffected, res.Error
}

// EmailTaken ikut memeriksa user yang sudah dihapus karena unique index tetap berlaku.
func (r *userRepository) EmailTaken(email string, exceptUserID uint) (bool, error) {
	var count int64
	err := r.db.Unscoped().Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exceptUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) NIKTaken(nik string, exceptUserID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProfilePribadi{}).
		Where("nik = ? AND user_id <> ?", nik, exceptUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) NIPTaken(nip string, exceptUserID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProfilePekerjaan{}).
		Where("nip = ? AND user_id <> ?", nip, exceptUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) SyncRoles(userID uint, roleIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		return replaceRoles(tx, &user, roleIDs)
	})
}

// PermissionNames mengembalikan gabungan permission dari semua role user.
func (r *userRepository) PermissionNames(userID uint) ([]string, error) {
	var names []string
	err := r.db.Table("permissions").
		Distinct("permissions.nama_permission").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("permissions.nama_permission", &names).Error
	return names, err
}

// UpsertDevice mendaftarkan perangkat, atau memindahkan kepemilikannya bila UUID sudah ada.
func (r *userRepository) UpsertDevice(device *model.Device) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "brand", "series", "firebase_token", "updated_at"}),
	}).Create(device).Error
}

func (r *userRepository) ResetDevices(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Device{}).Error
}

func (r *userRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
