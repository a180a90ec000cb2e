package usecase

import (
	"time"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
)

// Jadwal adalah jam kerja efektif seorang pegawai pada satu tanggal.
type Jadwal struct {
	Tanggal    string `json:"tanggal"`
	Hari       string `json:"hari"`
	JamMasuk   string `json:"jam_masuk"`
	JamPulang  string `json:"jam_pulang"`
	Libur      bool   `json:"libur"`
	Keterangan string `json:"keterangan,omitempty"`
}

// Kalender menentukan hari kerja dari HariLibur dan JamKerja role pegawai.
type Kalender struct {
	jamKerja repository.JamKerjaRepository
	libur    repository.HariLiburRepository
	cfg      config.AbsensiConfig
}

func NewKalender(jamKerja repository.JamKerjaRepository, libur repository.HariLiburRepository, cfg config.AbsensiConfig) *Kalender {
	return &Kalender{jamKerja: jamKerja, libur: libur, cfg: cfg}
}

func roleIDs(user *model.User) []uint {
	ids := make([]uint, 0, len(user.Roles))
	for _, r := range user.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

// Jadwal mengambil jadwal untuk tanggal tersebut. Bila user punya beberapa role,
// jadwal yang dipakai adalah jam masuk paling pagi dari role yang tidak libur.
// Tanpa JamKerja, hari Minggu libur dan hari lain memakai jam bawaan konfigurasi.
func (k *Kalender) Jadwal(user *model.User, tanggal time.Time) (Jadwal, error) {
	j := Jadwal{
		Tanggal:   tanggal.Format(layoutTanggal),
		Hari:      model.NamaHari[tanggal.Weekday()],
		JamMasuk:  k.cfg.JamMasuk,
		JamPulang: k.cfg.JamPulang,
	}

	libur, err := k.libur.IsHoliday(j.Tanggal)
	if err != nil {
		return j, err
	}
	if libur {
		j.Libur = true
		j.Keterangan = "Hari libur"
		return j, nil
	}

	list, err := k.jamKerja.FindForRoles(roleIDs(user), int(tanggal.Weekday()))
	if err != nil {
		return j, err
	}
	return k.pilihJadwal(j, list, tanggal.Weekday()), nil
}

func (k *Kalender) pilihJadwal(j Jadwal, list []model.JamKerja, hari time.Weekday) Jadwal {
	if len(list) == 0 {
		if hari == time.Sunday {
			j.Libur = true
			j.Keterangan = "Hari Minggu"
		}
		return j
	}

	var chosen *model.JamKerja
	for i := range list {
		if list[i].IsLibur {
			continue
		}
		if chosen == nil || list[i].JamMasuk < chosen.JamMasuk {
			chosen = &list[i]
		}
	}
	if chosen == nil {
		j.Libur = true
		j.Keterangan = "Tidak ada jam kerja"
		return j
	}
	j.JamMasuk = chosen.JamMasuk
	j.JamPulang = chosen.JamPulang
	return j
}

// HariKerja mengembalikan tanggal-tanggal kerja di antara mulai dan selesai (inklusif).
func (k *Kalender) HariKerja(user *model.User, mulai, selesai time.Time) ([]string, error) {
	liburSet, err := k.libur.InRange(mulai.Format(layoutTanggal), selesai.Format(layoutTanggal))
	if err != nil {
		return nil, err
	}

	// jam kerja per hari cukup diambil sekali per weekday
	perHari := make(map[time.Weekday]Jadwal, 7)
	var dates []string
	for d := mulai; !d.After(selesai); d = d.AddDate(0, 0, 1) {
		tanggal := d.Format(layoutTanggal)
		if liburSet[tanggal] {
			continue
		}
		j, ok := perHari[d.Weekday()]
		if !ok {
			list, err := k.jamKerja.FindForRoles(roleIDs(user), int(d.Weekday()))
			if err != nil {
				return nil, err
			}
			j = k.pilihJadwal(Jadwal{JamMasuk: k.cfg.JamMasuk, JamPulang: k.cfg.JamPulang}, list, d.Weekday())
			perHari[d.Weekday()] = j
		}
		if j.Libur {
			continue
		}
		dates = append(dates, tanggal)
	}
	return dates, nil
}
