package export

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// QRCode membuat PNG berisi content, dipakai untuk kartu identitas pegawai.
func QRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qrcode")
	}
	return png, nil
}
