package model

type Role struct {
	Model
	NamaRole    string       `json:"nama_role" gorm:"size:50;uniqueIndex;not null"`
	Keterangan  string       `json:"keterangan"`
	Permissions []Permission `json:"permissions" gorm:"many2many:role_permissions;"`
	Users       []User       `json:"-" gorm:"many2many:user_roles;"`
}

type Permission struct {
	Model
	NamaPermission string `json:"nama_permission" gorm:"size:100;uniqueIndex;not null"`
}

// Nama role bawaan. Role lain boleh dibuat lewat menu role.
const (
	RoleSuperAdmin    = "super_admin"
	RoleAdmin         = "admin"
	RoleHRD           = "hrd"
	RoleKepalaSekolah = "kepala_sekolah"
	RoleDirektur      = "direktur"
	RoleGuru          = "guru"
	RoleStaf          = "staf"
)

const (
	PermKelolaPegawai    = "kelola_pegawai"
	PermKelolaMasterData = "kelola_master_data"
	PermKelolaAbsensi    = "kelola_absensi"
	PermKelolaCuti       = "kelola_cuti"
	PermKelolaEvaluasi   = "kelola_evaluasi"
	PermKelolaSlipGaji   = "kelola_slip_gaji"
	PermKelolaRole       = "kelola_role"
	PermLihatLaporan     = "lihat_laporan"
	PermAksesPanelAdmin  = "akses_panel_admin"
)

func AllPermissions() []string {
	return []string{
		PermKelolaPegawai,
		PermKelolaMasterData,
		PermKelolaAbsensi,
		PermKelolaCuti,
		PermKelolaEvaluasi,
		PermKelolaSlipGaji,
		PermKelolaRole,
		PermLihatLaporan,
		PermAksesPanelAdmin,
	}
}
