package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type SlipGajiPDF struct {
	NamaYayasan string
	Periode     string
	Nama        string
	NIP         string
	Jabatan     string
	Departemen  string
	GajiPokok   decimal.Decimal
	Tunjangan   decimal.Decimal
	Potongan    decimal.Decimal
	Total       decimal.Decimal
	Keterangan  string
}

// Rupiah memformat angka menjadi "Rp 1.500.000,00".
func Rupiah(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "Rp " + b.String() + "," + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

// SlipGaji merender slip gaji satu halaman A4.
func SlipGaji(s SlipGajiPDF) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Slip Gaji "+s.Periode, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, s.NamaYayasan, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "SLIP GAJI PERIODE "+strings.ToUpper(s.Periode), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	identitas := [][2]string{
		{"Nama", s.Nama},
		{"NIP", s.NIP},
		{"Jabatan", s.Jabatan},
		{"Departemen", s.Departemen},
	}
	pdf.SetFont("Arial", "", 11)
	for _, row := range identitas {
		pdf.CellFormat(40, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, ": "+row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(221, 235, 247)
	pdf.CellFormat(120, 8, "Komponen", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Jumlah", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	rincian := []struct {
		label string
		nilai decimal.Decimal
	}{
		{"Gaji Pokok", s.GajiPokok},
		{"Tunjangan", s.Tunjangan},
		{"Potongan", s.Potongan.Neg()},
	}
	for _, r := range rincian {
		pdf.CellFormat(120, 8, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, Rupiah(r.nilai), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Total Diterima", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, Rupiah(s.Total), "1", 1, "R", false, 0, "")

	if s.Keterangan != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Keterangan: "+s.Keterangan, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render slip gaji pdf")
	}
	return buf.Bytes(), nil
}

// NamaFileSlip membuat nama file unduhan slip.
func NamaFileSlip(nip string, bulan, tahun int) string {
	return fmt.Sprintf("slip-gaji-%s-%04d-%02d.pdf", nip, tahun, bulan)
}
