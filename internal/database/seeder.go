package database

import (
	"log"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sdm-yayasan-backend/internal/model"
)

// SeedConfig berisi akun super admin pertama.
type SeedConfig struct {
	AdminNama     string
	AdminEmail    string
	AdminPassword string
}

// permission bawaan per role. super_admin selalu lolos pengecekan sehingga cukup diberi semua.
var rolePermissions = map[string][]string{
	model.RoleSuperAdmin: model.AllPermissions(),
	model.RoleAdmin:      model.AllPermissions(),
	model.RoleHRD: {
		model.PermKelolaPegawai,
		model.PermKelolaAbsensi,
		model.PermKelolaCuti,
		model.PermKelolaEvaluasi,
		model.PermKelolaSlipGaji,
		model.PermLihatLaporan,
		model.PermAksesPanelAdmin,
	},
	model.RoleKepalaSekolah: {model.PermKelolaEvaluasi, model.PermLihatLaporan, model.PermAksesPanelAdmin},
	model.RoleDirektur:      {model.PermLihatLaporan, model.PermAksesPanelAdmin},
	model.RoleGuru:          nil,
	model.RoleStaf:          nil,
}

var roleKeterangan = map[string]string{
	model.RoleSuperAdmin:    "Akses penuh",
	model.RoleAdmin:         "Administrator aplikasi",
	model.RoleHRD:           "Bagian SDM, tahap kedua persetujuan cuti",
	model.RoleKepalaSekolah: "Tahap pertama persetujuan cuti guru",
	model.RoleDirektur:      "Tahap akhir persetujuan cuti tahunan",
	model.RoleGuru:          "Tenaga pendidik",
	model.RoleStaf:          "Tenaga kependidikan",
}

// SeedAll mengisi data awal. Aman dijalankan berulang kali.
func SeedAll(db *gorm.DB, cfg SeedConfig) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// 1. Seed Permissions
		perms := make(map[string]model.Permission)
		for _, name := range model.AllPermissions() {
			p := model.Permission{NamaPermission: name}
			if err := tx.Where(model.Permission{NamaPermission: name}).FirstOrCreate(&p).Error; err != nil {
				return errors.Wrapf(err, "seed permission %s", name)
			}
			perms[name] = p
		}

		// 2. Seed Roles beserta permission
		roles := make(map[string]model.Role)
		for name, names := range rolePermissions {
			r := model.Role{NamaRole: name}
			if err := tx.Where(model.Role{NamaRole: name}).
				Attrs(model.Role{Keterangan: roleKeterangan[name]}).
				FirstOrCreate(&r).Error; err != nil {
				return errors.Wrapf(err, "seed role %s", name)
			}
			list := make([]model.Permission, 0, len(names))
			for _, n := range names {
				list = append(list, perms[n])
			}
			if err := tx.Model(&r).Association("Permissions").Replace(list); err != nil {
				return errors.Wrapf(err, "seed permission role %s", name)
			}
			roles[name] = r
		}

		// 3. Seed Jam Kerja default guru & staf: Senin-Jumat 07:00-15:00, Sabtu 07:00-12:00, Minggu libur
		for _, name := range []string{model.RoleGuru, model.RoleStaf} {
			for hari := 0; hari <= 6; hari++ {
				jk := model.JamKerja{RoleID: roles[name].ID, Hari: hari}
				switch hari {
				case 0:
					jk.IsLibur = true
				case 6:
					jk.JamMasuk, jk.JamPulang = "07:00", "12:00"
				default:
					jk.JamMasuk, jk.JamPulang = "07:00", "15:00"
				}
				// kondisi memakai string karena struct mengabaikan Hari = 0
				if err := tx.Where("role_id = ? AND hari = ?", jk.RoleID, hari).
					Attrs(jk).FirstOrCreate(&jk).Error; err != nil {
					return errors.Wrap(err, "seed jam kerja")
				}
			}
		}

		// 4. Seed Departemen
		for _, nama := range []string{"Pendidikan", "Tata Usaha", "Keuangan"} {
			d := model.Departemen{Nama: nama}
			if err := tx.Where(model.Departemen{Nama: nama}).FirstOrCreate(&d).Error; err != nil {
				return errors.Wrap(err, "seed departemen")
			}
		}

		// 5. Seed Akun Super Admin
		if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			log.Println("Seeding super admin dilewati: email/password kosong")
			return nil
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash password admin")
		}

		var admin model.User
		err = tx.Where("email = ?", cfg.AdminEmail).First(&admin).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			admin = model.User{
				Nama:             cfg.AdminNama,
				Email:            cfg.AdminEmail,
				Password:         string(hashedPassword),
				IsActive:         true,
				ProfilePribadi:   &model.ProfilePribadi{NIK: "0000000000000001"},
				ProfilePekerjaan: &model.ProfilePekerjaan{NIP: "ADMIN-001", StatusKepegawaian: model.StatusPegawaiTetap},
			}
			if err := tx.Create(&admin).Error; err != nil {
				return errors.Wrap(err, "seed super admin")
			}
		case err != nil:
			return errors.Wrap(err, "cari super admin")
		default:
			// Paksa update password agar selalu sinkron dengan konfigurasi seeder
			if err := tx.Model(&admin).Update("password", string(hashedPassword)).Error; err != nil {
				return errors.Wrap(err, "update password super admin")
			}
		}
		superAdmin := roles[model.RoleSuperAdmin]
		if err := tx.Model(&admin).Association("Roles").Append(&superAdmin); err != nil {
			return errors.Wrap(err, "pasang role super admin")
		}
		log.Println("Seeding super admin berhasil:", cfg.AdminEmail)
		return nil
	})
}
