package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/pkg/export"
	"sdm-yayasan-backend/internal/pkg/idlist"
	"sdm-yayasan-backend/internal/pkg/notify"
	"sdm-yayasan-backend/internal/pkg/storage"
	"sdm-yayasan-backend/internal/pkg/validation"
	"sdm-yayasan-backend/internal/repository"
)

// SlipGajiRequest dikirim sebagai multipart form agar PDF bisa ikut diunggah.
// Nominal ditulis sebagai string desimal, contoh "3500000.00".
type SlipGajiRequest struct {
	UserID     uint   `json:"user_id" form:"user_id" validate:"required"`
	Bulan      int    `json:"bulan" form:"bulan" validate:"required,min=1,max=12"`
	Tahun      int    `json:"tahun" form:"tahun" validate:"required,min=2000,max=2100"`
	GajiPokok  string `json:"gaji_pokok" form:"gaji_pokok" validate:"required,numeric"`
	Tunjangan  string `json:"tunjangan" form:"tunjangan" validate:"omitempty,numeric"`
	Potongan   string `json:"potongan" form:"potongan" validate:"omitempty,numeric"`
	Keterangan string `json:"keterangan" form:"keterangan" validate:"max=500"`
}

func (r SlipGajiRequest) nominal() (pokok, tunjangan, potongan decimal.Decimal, err error) {
	parse := func(field, s string) (decimal.Decimal, error) {
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, apperror.Field(field, field+" harus berupa angka")
		}
		if d.IsNegative() {
			return decimal.Zero, apperror.Field(field, field+" tidak boleh negatif")
		}
		return d.Round(2), nil
	}
	if pokok, err = parse("gaji_pokok", r.GajiPokok); err != nil {
		return
	}
	if tunjangan, err = parse("tunjangan", r.Tunjangan); err != nil {
		return
	}
	potongan, err = parse("potongan", r.Potongan)
	return
}

type SlipGajiUsecase struct {
	repo        repository.SlipGajiRepository
	users       repository.UserRepository
	store       storage.Storage
	events      notify.Publisher
	namaYayasan string
	now         Clock
}

func NewSlipGajiUsecase(repo repository.SlipGajiRepository, users repository.UserRepository, store storage.Storage, events notify.Publisher, namaYayasan string, now Clock) *SlipGajiUsecase {
	if now == nil {
		now = time.Now
	}
	if events == nil {
		events = notify.Discard{}
	}
	return &SlipGajiUsecase{repo: repo, users: users, store: store, events: events, namaYayasan: namaYayasan, now: now}
}

func (u *SlipGajiUsecase) apply(s *model.SlipGaji, req SlipGajiRequest) (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	pokok, tunjangan, potongan, err := req.nominal()
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(req.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.Field("user_id", "pegawai tidak ditemukan")
		}
		return nil, internal(err, "find user")
	}

	s.UserID = req.UserID
	s.Bulan = req.Bulan
	s.Tahun = req.Tahun
	s.GajiPokok = pokok
	s.Tunjangan = tunjangan
	s.Potongan = potongan
	s.Keterangan = req.Keterangan
	s.HitungTotal()
	if s.Total.IsNegative() {
		return nil, apperror.Field("potongan", "potongan melebihi gaji pokok ditambah tunjangan")
	}
	return user, nil
}

// simpanFile mengunggah PDF dari admin, atau merender PDF slip bila tidak ada file.
func (u *SlipGajiUsecase) simpanFile(ctx context.Context, s *model.SlipGaji, user *model.User, file *multipart.FileHeader) (string, error) {
	if file != nil {
		return storage.SaveUpload(ctx, u.store, "slip-gaji", file, storage.PDFTypes)
	}

	data := export.SlipGajiPDF{
		NamaYayasan: u.namaYayasan,
		Periode:     fmt.Sprintf("%s %d", notify.NamaBulan(s.Bulan), s.Tahun),
		Nama:        user.Nama,
		GajiPokok:   s.GajiPokok,
		Tunjangan:   s.Tunjangan,
		Potongan:    s.Potongan,
		Total:       s.Total,
		Keterangan:  s.Keterangan,
	}
	if k := user.ProfilePekerjaan; k != nil {
		data.NIP = k.NIP
		if k.Jabatan != nil {
			data.Jabatan = k.Jabatan.Nama
		}
		if k.Departemen != nil {
			data.Departemen = k.Departemen.Nama
		}
	}
	pdf, err := export.SlipGaji(data)
	if err != nil {
		return "", err
	}
	key := storage.NewKey("slip-gaji", ".pdf")
	if err := u.store.Put(ctx, key, bytes.NewReader(pdf), "application/pdf"); err != nil {
		return "", err
	}
	return key, nil
}

func duplikatSlip(err error, op string) error {
	if repository.IsDuplicateKey(err) {
		return apperror.Field("bulan", "slip gaji pegawai untuk periode ini sudah ada")
	}
	return internal(err, op)
}

func (u *SlipGajiUsecase) Create(ctx context.Context, req SlipGajiRequest, file *multipart.FileHeader) (*model.SlipGaji, error) {
	s := &model.SlipGaji{}
	user, err := u.apply(s, req)
	if err != nil {
		return nil, err
	}
	key, err := u.simpanFile(ctx, s, user, file)
	if err != nil {
		return nil, internal(err, "simpan file slip")
	}
	s.FilePath = key
	if err := u.repo.Create(s); err != nil {
		_ = u.store.Delete(ctx, key)
		return nil, duplikatSlip(err, "create slip gaji")
	}
	return s, nil
}

// Update selalu mengganti file: PDF baru dari admin, atau PDF yang dirender ulang dari nominal terbaru.
func (u *SlipGajiUsecase) Update(ctx context.Context, id uint, req SlipGajiRequest, file *multipart.FileHeader) (*model.SlipGaji, error) {
	s, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if s.DiterbitkanPada != nil {
		return nil, apperror.Conflict("Slip gaji yang sudah terbit tidak dapat diubah")
	}
	oldKey := s.FilePath
	user, err := u.apply(s, req)
	if err != nil {
		return nil, err
	}
	key, err := u.simpanFile(ctx, s, user, file)
	if err != nil {
		return nil, internal(err, "simpan file slip")
	}
	s.FilePath = key
	s.User = nil
	if err := u.repo.Update(s); err != nil {
		_ = u.store.Delete(ctx, key)
		return nil, duplikatSlip(err, "update slip gaji")
	}
	if oldKey != "" && oldKey != key {
		_ = u.store.Delete(ctx, oldKey)
	}
	return s, nil
}

func (u *SlipGajiUsecase) Get(id uint) (*model.SlipGaji, error) {
	s, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Slip gaji tidak ditemukan", "get slip gaji")
	}
	return s, nil
}

func (u *SlipGajiUsecase) List(filter repository.SlipGajiFilter) ([]model.SlipGaji, int64, error) {
	list, total, err := u.repo.List(filter)
	if err != nil {
		return nil, 0, internal(err, "list slip gaji")
	}
	return list, total, nil
}

// ListMilik hanya menampilkan slip yang sudah terbit.
func (u *SlipGajiUsecase) ListMilik(userID uint, filter repository.SlipGajiFilter) ([]model.SlipGaji, int64, error) {
	filter.UserID = userID
	filter.HanyaTerbit = true
	return u.List(filter)
}

// Terbitkan menandai slip terbit lalu mengirim email berisi PDF-nya.
func (u *SlipGajiUsecase) Terbitkan(ctx context.Context, id uint) (*model.SlipGaji, error) {
	s, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	now := u.now()
	if err := u.repo.Publish(id, now); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperror.Conflict("Slip gaji sudah diterbitkan")
		}
		return nil, internal(err, "publish slip gaji")
	}
	s.DiterbitkanPada = &now

	event := notify.Event{Type: notify.SlipGajiTerbit, Slip: s}
	if lampiran, err := u.lampiran(ctx, s); err != nil {
		log.Printf("WARN slip gaji %d terbit tanpa lampiran: %v", s.ID, err)
	} else {
		event.Lampiran = lampiran
	}
	u.events.Publish(event)
	return s, nil
}

func (u *SlipGajiUsecase) lampiran(ctx context.Context, s *model.SlipGaji) (*notify.Attachment, error) {
	if s.FilePath == "" {
		return nil, errors.New("slip tidak memiliki file")
	}
	rc, err := u.store.Open(ctx, s.FilePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, storage.MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	return &notify.Attachment{Nama: namaFileSlip(s), Data: data}, nil
}

func namaFileSlip(s *model.SlipGaji) string {
	nip := fmt.Sprintf("%d", s.UserID)
	if s.User != nil && s.User.ProfilePekerjaan != nil && s.User.ProfilePekerjaan.NIP != "" {
		nip = s.User.ProfilePekerjaan.NIP
	}
	return export.NamaFileSlip(nip, s.Bulan, s.Tahun)
}

// Unduh membuka file slip. Pegawai hanya boleh mengunduh slip miliknya yang sudah terbit.
func (u *SlipGajiUsecase) Unduh(ctx context.Context, id, userID uint, admin bool) (io.ReadCloser, string, error) {
	s, err := u.Get(id)
	if err != nil {
		return nil, "", err
	}
	if !admin && (s.UserID != userID || s.DiterbitkanPada == nil) {
		return nil, "", apperror.NotFound("Slip gaji tidak ditemukan")
	}
	if s.FilePath == "" {
		return nil, "", apperror.NotFound("File slip gaji tidak tersedia")
	}
	rc, err := u.store.Open(ctx, s.FilePath)
	if err != nil {
		return nil, "", internal(err, "open slip gaji")
	}
	return rc, namaFileSlip(s), nil
}

func (u *SlipGajiUsecase) Delete(ctx context.Context, id uint) error {
	s, err := u.repo.Delete(id)
	if err != nil {
		return notFoundOr(err, "Slip gaji tidak ditemukan", "delete slip gaji")
	}
	if s.FilePath != "" {
		_ = u.store.Delete(ctx, s.FilePath)
	}
	return nil
}

func (u *SlipGajiUsecase) BulkDelete(ctx context.Context, raw string) (int64, error) {
	ids, err := idlist.Parse(raw)
	if err != nil {
		return 0, apperror.Field("ids", err.Error())
	}
	deleted, err := u.repo.DeleteMany(ids)
	if err != nil {
		return 0, internal(err, "bulk delete slip gaji")
	}
	for _, s := range deleted {
		if s.FilePath != "" {
			_ = u.store.Delete(ctx, s.FilePath)
		}
	}
	return int64(len(deleted)), nil
}
