package notify

import (
	"log"

	"sdm-yayasan-backend/internal/model"
)

type EventType string

const (
	// CutiDiajukan dipublikasikan saat pegawai membuat pengajuan cuti baru.
	CutiDiajukan EventType = "CutiDiajukan"
	// CutiStatusBerubah dipublikasikan setiap kali pengajuan maju, ditolak, atau dibatalkan.
	CutiStatusBerubah EventType = "CutiStatusBerubah"
	// SlipGajiTerbit dipublikasikan saat slip gaji diterbitkan ke pegawai.
	SlipGajiTerbit EventType = "SlipGajiTerbit"
)

type Event struct {
	Type      EventType
	Cuti      *model.PengajuanCuti
	OldStatus string
	Slip      *model.SlipGaji
	Lampiran  *Attachment
}

type Publisher interface {
	Publish(e Event)
}

// Bus adalah channel ber-buffer agar handler API tidak menunggu pengiriman notifikasi.
type Bus struct {
	ch chan Event
}

func NewBus(size int) *Bus {
	return &Bus{ch: make(chan Event, size)}
}

func (b *Bus) Publish(e Event) {
	select {
	case b.ch <- e:
	default:
		log.Printf("event bus penuh, event %s dibuang", e.Type)
	}
}

func (b *Bus) Events() <-chan Event { return b.ch }

// Discard dipakai saat notifikasi tidak dibutuhkan (seeder, test).
type Discard struct{}

func (Discard) Publish(Event) {}
