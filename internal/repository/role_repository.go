package repository

import (
	"sdm-yayasan-backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	GetAll() ([]model.Role, error)
	GetByID(id uint) (*model.Role, error)
	FindByNames(names []string) ([]model.Role, error)
	FindByIDs(ids []uint) ([]model.Role, error)
	Create(role *model.Role, permissionIDs []uint) error
	Update(role *model.Role, permissionIDs []uint) error
	Delete(id uint) error
	GetAllPermissions() ([]model.Permission, error)
	CreatePermission(perm *model.Permission) error
	DeletePermission(id uint) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db}
}

func (r *roleRepository) GetAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Permissions").Order("nama_role asc").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) GetByID(id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.Preload("Permissions").First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByNames(names []string) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Where("nama_role IN ?", names).Find(&roles).Error
	return roles, err
}

func (r *roleRepository) FindByIDs(ids []uint) ([]model.Role, error) {
	var roles []model.Role
	if len(ids) == 0 {
		return roles, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

func (r *roleRepository) Create(role *model.Role, permissionIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 1. Buat Role
		if err := tx.Omit("Permissions", "Users").Create(role).Error; err != nil {
			return err
		}
		// 2. Assign Permissions
		return replacePermissions(tx, role, permissionIDs)
	})
}

func (r *roleRepository) Update(role *model.Role, permissionIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Permissions", "Users").Save(role).Error; err != nil {
			return err
		}
		// Relasi permission diganti seluruhnya
		return replacePermissions(tx, role, permissionIDs)
	})
}

func replacePermissions(tx *gorm.DB, role *model.Role, permissionIDs []uint) error {
	var perms []model.Permission
	if len(permissionIDs) > 0 {
		if err := tx.Where("id IN ?", permissionIDs).Find(&perms).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(role).Association("Permissions").Replace(perms); err != nil {
		return err
	}
	role.Permissions = perms
	return nil
}

// Delete ikut menghapus baris pivot role_permissions dan user_roles.
func (r *roleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.First(&role, id).Error; err != nil {
			return err
		}
		return tx.Select("Permissions", "Users").Delete(&role).Error
	})
}

func (r *roleRepository) GetAllPermissions() ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.Order("nama_permission asc").Find(&perms).Error
	return perms, err
}

func (r *roleRepository) CreatePermission(perm *model.Permission) error {
	return r.db.Create(perm).Error
}

func (r *roleRepository) DeletePermission(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE permission_id = ?", id).Error; err != nil {
			return err
		}
		return deleteByID(tx, &model.Permission{}, id)
	})
}
