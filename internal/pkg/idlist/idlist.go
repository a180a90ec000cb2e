// Package idlist mengurai daftar id dari field tersembunyi form pilihan massal ("1,2,3").
package idlist

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxIDs membatasi jumlah id dalam satu permintaan hapus massal.
const MaxIDs = 500

// Parse mengubah "3, 5,5,8" menjadi [3 5 8]. Id kosong diabaikan, duplikat dibuang, urutan dipertahankan.
func Parse(raw string) ([]uint, error) {
	var ids []uint
	seen := make(map[uint]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, errors.Errorf("id %q tidak valid", part)
		}
		id := uint(n)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("tidak ada data yang dipilih")
	}
	if len(ids) > MaxIDs {
		return nil, errors.Errorf("maksimal %d data per penghapusan", MaxIDs)
	}
	return ids, nil
}
