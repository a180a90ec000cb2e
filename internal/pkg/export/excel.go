// Package export membuat berkas unduhan: Excel (data pegawai, rekap absensi), PDF slip gaji, dan QR code pegawai.
package export

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet adalah satu tabel sederhana: baris judul lalu baris data.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Excel menulis satu atau lebih sheet ke workbook baru dan mengembalikan isinya.
func Excel(sheets ...Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "style header")
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return nil, errors.Wrap(err, "rename sheet")
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, errors.Wrap(err, "new sheet")
		}

		for col, header := range s.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(s.Name, cell, header); err != nil {
				return nil, errors.Wrap(err, "set header")
			}
		}
		if len(s.Headers) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(s.Headers), 1)
			_ = f.SetCellStyle(s.Name, "A1", last, headerStyle)
			lastCol, _ := excelize.ColumnNumberToName(len(s.Headers))
			_ = f.SetColWidth(s.Name, "A", lastCol, 18)
		}

		// Populate rows starting from row 2
		for r, row := range s.Rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				if err := f.SetCellValue(s.Name, cell, v); err != nil {
					return nil, errors.Wrap(err, "set cell")
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf, nil
}
