package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcel(t *testing.T) {
	buf, err := Excel(
		Sheet{Name: "Pegawai", Headers: []string{"NIP", "Nama"}, Rows: [][]interface{}{{"1987", "Ani"}, {"1990", "Budi"}}},
		Sheet{Name: "Ringkasan", Headers: []string{"Total"}, Rows: [][]interface{}{{2}}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Pegawai", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Budi", v)

	v, err = f.GetCellValue("Ringkasan", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestRupiah(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rp 0,00"},
		{"999", "Rp 999,00"},
		{"1500000", "Rp 1.500.000,00"},
		{"1234567.5", "Rp 1.234.567,50"},
		{"-250000", "-Rp 250.000,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Rupiah(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestSlipGajiPDF(t *testing.T) {
	pdf, err := SlipGaji(SlipGajiPDF{
		NamaYayasan: "Yayasan Pendidikan",
		Periode:     "Juli 2025",
		Nama:        "Ani",
		NIP:         "1987",
		GajiPokok:   decimal.NewFromInt(3000000),
		Tunjangan:   decimal.NewFromInt(500000),
		Potongan:    decimal.NewFromInt(100000),
		Total:       decimal.NewFromInt(3400000),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("NIP:1987", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestNamaFileSlip(t *testing.T) {
	assert.Equal(t, "slip-gaji-1987-2025-07.pdf", NamaFileSlip("1987", 7, 2025))
}
