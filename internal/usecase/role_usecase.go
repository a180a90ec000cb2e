package usecase

import (
	"context"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

type RoleRequest struct {
	NamaRole      string `json:"nama_role" form:"nama_role" validate:"required,notblank,max=50"`
	Keterangan    string `json:"keterangan" form:"keterangan" validate:"max=255"`
	PermissionIDs []uint `json:"permission_ids" form:"permission_ids"`
}

type PermissionRequest struct {
	NamaPermission string `json:"nama_permission" form:"nama_permission" validate:"required,notblank,max=100"`
}

// roleBawaan tidak boleh dihapus karena dipakai rantai persetujuan cuti dan seeder.
var roleBawaan = map[string]bool{
	model.RoleSuperAdmin:    true,
	model.RoleHRD:           true,
	model.RoleKepalaSekolah: true,
	model.RoleDirektur:      true,
}

type RoleUsecase struct {
	repo        repository.RoleRepository
	permissions *PermissionService
}

func NewRoleUsecase(repo repository.RoleRepository, permissions *PermissionService) *RoleUsecase {
	return &RoleUsecase{repo: repo, permissions: permissions}
}

func (u *RoleUsecase) List() ([]model.Role, error) {
	roles, err := u.repo.GetAll()
	if err != nil {
		return nil, internal(err, "list role")
	}
	return roles, nil
}

func (u *RoleUsecase) Get(id uint) (*model.Role, error) {
	role, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Role tidak ditemukan", "get role")
	}
	return role, nil
}

func duplikatRole(err error, op string) error {
	if repository.IsDuplicateKey(err) {
		return apperror.Field("nama_role", "nama role sudah digunakan")
	}
	return internal(err, op)
}

func (u *RoleUsecase) Create(ctx context.Context, req RoleRequest) (*model.Role, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	role := &model.Role{NamaRole: req.NamaRole, Keterangan: req.Keterangan}
	if err := u.repo.Create(role, uniqueIDs(req.PermissionIDs)); err != nil {
		return nil, duplikatRole(err, "create role")
	}
	u.permissions.Invalidate(ctx)
	return role, nil
}

// Update mengganti seluruh permission role dengan PermissionIDs.
func (u *RoleUsecase) Update(ctx context.Context, id uint, req RoleRequest) (*model.Role, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	role, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if roleBawaan[role.NamaRole] && role.NamaRole != req.NamaRole {
		return nil, apperror.Field("nama_role", "nama role bawaan tidak dapat diubah")
	}
	role.NamaRole = req.NamaRole
	role.Keterangan = req.Keterangan
	if err := u.repo.Update(role, uniqueIDs(req.PermissionIDs)); err != nil {
		return nil, duplikatRole(err, "update role")
	}
	u.permissions.Invalidate(ctx)
	return role, nil
}

func (u *RoleUsecase) Delete(ctx context.Context, id uint) error {
	role, err := u.Get(id)
	if err != nil {
		return err
	}
	if roleBawaan[role.NamaRole] {
		return apperror.BadRequest("Role bawaan tidak dapat dihapus")
	}
	if err := u.repo.Delete(id); err != nil {
		return notFoundOr(err, "Role tidak ditemukan", "delete role")
	}
	u.permissions.Invalidate(ctx)
	return nil
}

func (u *RoleUsecase) Permissions() ([]model.Permission, error) {
	perms, err := u.repo.GetAllPermissions()
	if err != nil {
		return nil, internal(err, "list permission")
	}
	return perms, nil
}

func (u *RoleUsecase) CreatePermission(req PermissionRequest) (*model.Permission, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	perm := &model.Permission{NamaPermission: req.NamaPermission}
	if err := u.repo.CreatePermission(perm); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperror.Field("nama_permission", "permission sudah ada")
		}
		return nil, internal(err, "create permission")
	}
	return perm, nil
}

func (u *RoleUsecase) DeletePermission(ctx context.Context, id uint) error {
	if err := u.repo.DeletePermission(id); err != nil {
		return notFoundOr(err, "Permission tidak ditemukan", "delete permission")
	}
	u.permissions.Invalidate(ctx)
	return nil
}
