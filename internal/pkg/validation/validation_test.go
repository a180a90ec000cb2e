package validation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/internal/pkg/apperror"
)

type sampleRequest struct {
	Nama    string  `json:"nama" validate:"notblank"`
	Email   string  `json:"email" validate:"required,email"`
	Tanggal string  `json:"tanggal" validate:"omitempty,tanggal"`
	Jam     string  `json:"jam" validate:"omitempty,jam"`
	Skor    float64 `json:"skor" validate:"gte=0,lte=100"`
}

func TestFields(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  sampleRequest{Nama: "Siti", Email: "siti@yayasan.sch.id", Tanggal: "2025-07-14", Jam: "07:00", Skor: 90},
		},
		{
			name:       "blank name and bad email",
			req:        sampleRequest{Nama: "  ", Email: "bukan-email"},
			wantFields: []string{"nama", "email"},
		},
		{
			name:       "bad date and time",
			req:        sampleRequest{Nama: "Siti", Email: "siti@yayasan.sch.id", Tanggal: "14-07-2025", Jam: "7 pagi"},
			wantFields: []string{"tanggal", "jam"},
		},
		{
			name:       "score out of range",
			req:        sampleRequest{Nama: "Siti", Email: "siti@yayasan.sch.id", Skor: 101},
			wantFields: []string{"skor"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Fields(tt.req)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fields)
				return
			}
			require.NotNil(t, fields)
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.NotEmpty(t, fields[f], f)
			}
		})
	}
}

func TestStructReturnsValidationError(t *testing.T) {
	err := Struct(sampleRequest{})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Contains(t, appErr.Fields, "email")
}
