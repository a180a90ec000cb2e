package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"sdm-yayasan-backend/internal/model"
)

// UserFinder adalah bagian repository user yang dibutuhkan untuk mencari penerima notifikasi.
type UserFinder interface {
	FindByID(id uint) (*model.User, error)
	FindByRoleName(roleName string) ([]model.User, error)
}

type Notifier struct {
	users  UserFinder
	mailer Mailer
	pusher Pusher
}

func NewNotifier(users UserFinder, mailer Mailer, pusher Pusher) *Notifier {
	return &Notifier{users: users, mailer: mailer, pusher: pusher}
}

// Start membaca event sampai ctx dibatalkan. Dijalankan sebagai goroutine dari main.
func (n *Notifier) Start(ctx context.Context, events <-chan Event) {
	log.Println("Notifier consumer started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Notifier consumer stopped")
			return
		case e := <-events:
			sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			n.Handle(sendCtx, e)
			cancel()
		}
	}
}

// ApproverRole memetakan status menunggu ke role yang harus memproses.
func ApproverRole(status string) string {
	switch status {
	case model.CutiMenungguKepalaSekolah:
		return model.RoleKepalaSekolah
	case model.CutiMenungguHRD:
		return model.RoleHRD
	case model.CutiMenungguDirektur:
		return model.RoleDirektur
	}
	return ""
}

func (n *Notifier) Handle(ctx context.Context, e Event) {
	switch e.Type {
	case CutiDiajukan, CutiStatusBerubah:
		if e.Cuti != nil {
			n.handleCuti(ctx, e)
		}
	case SlipGajiTerbit:
		if e.Slip != nil {
			n.handleSlip(ctx, e)
		}
	}
}

func (n *Notifier) handleCuti(ctx context.Context, e Event) {
	cuti := e.Cuti
	data := map[string]string{
		"pengajuan_cuti_id": strconv.FormatUint(uint64(cuti.ID), 10),
		"status":            cuti.Status,
	}

	pemohon, err := n.users.FindByID(cuti.UserID)
	if err != nil {
		log.Printf("notifier: pemohon cuti %d tidak ditemukan: %v", cuti.UserID, err)
		return
	}

	periode := fmt.Sprintf("%s s.d. %s", cuti.TanggalMulai, cuti.TanggalSelesai)

	// A. Beri tahu role yang harus memproses tahap berikutnya
	if role := ApproverRole(cuti.Status); role != "" {
		approvers, err := n.users.FindByRoleName(role)
		if err != nil {
			log.Printf("notifier: gagal mengambil user role %s: %v", role, err)
		}
		title := "Pengajuan Cuti Menunggu Persetujuan"
		body := fmt.Sprintf("Cuti %s %s (%s) menunggu persetujuan Anda.", cuti.JenisCuti, pemohon.Nama, periode)
		for _, a := range approvers {
			// pemohon tidak memproses pengajuannya sendiri
			if a.ID == cuti.UserID {
				continue
			}
			n.send(ctx, a, title, EmailData{Judul: title, Nama: a.Nama, Baris: []string{body}}, body, data)
		}
	}

	// B. Beri tahu pemohon bila status berubah
	if e.Type == CutiStatusBerubah {
		title := "Status Pengajuan Cuti"
		body := fmt.Sprintf("Pengajuan cuti %s Anda (%s) sekarang berstatus %s.", cuti.JenisCuti, periode, StatusLabel(cuti.Status))
		n.send(ctx, *pemohon, title, EmailData{Judul: title, Nama: pemohon.Nama, Baris: []string{body}}, body, data)
	}
}

func (n *Notifier) handleSlip(ctx context.Context, e Event) {
	slip := e.Slip
	pegawai, err := n.users.FindByID(slip.UserID)
	if err != nil {
		log.Printf("notifier: pegawai slip %d tidak ditemukan: %v", slip.UserID, err)
		return
	}
	title := "Slip Gaji Terbit"
	body := fmt.Sprintf("Slip gaji %s %d sudah dapat diunduh.", NamaBulan(slip.Bulan), slip.Tahun)
	data := map[string]string{"slip_gaji_id": strconv.FormatUint(uint64(slip.ID), 10)}

	var attachments []Attachment
	if e.Lampiran != nil {
		attachments = append(attachments, *e.Lampiran)
	}
	n.send(ctx, *pegawai, title, EmailData{Judul: title, Nama: pegawai.Nama, Baris: []string{body, "Slip gaji terlampir pada email ini."}}, body, data, attachments...)
}

func (n *Notifier) send(ctx context.Context, to model.User, title string, email EmailData, body string, data map[string]string, attachments ...Attachment) {
	if to.Email != "" {
		if err := n.mailer.Send(to.Email, title, email, attachments...); err != nil {
			log.Printf("notifier: %v", err)
		}
	}

	var tokens []string
	for _, d := range to.Devices {
		if d.FirebaseToken != "" {
			tokens = append(tokens, d.FirebaseToken)
		}
	}
	if err := n.pusher.Push(ctx, tokens, title, body, data); err != nil {
		log.Printf("notifier: %v", err)
	}
}

func StatusLabel(status string) string {
	switch status {
	case model.CutiMenungguKepalaSekolah:
		return "menunggu persetujuan kepala sekolah"
	case model.CutiMenungguHRD:
		return "menunggu persetujuan HRD"
	case model.CutiMenungguDirektur:
		return "menunggu persetujuan direktur"
	case model.CutiDisetujui:
		return "disetujui"
	case model.CutiDitolak:
		return "ditolak"
	case model.CutiDibatalkan:
		return "dibatalkan"
	}
	return status
}

var namaBulan = [...]string{"", "Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}

func NamaBulan(bulan int) string {
	if bulan < 1 || bulan > 12 {
		return strconv.Itoa(bulan)
	}
	return namaBulan[bulan]
}
