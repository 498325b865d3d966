package importer

import (
	"bytes"
	"strings"
	"testing"

	"supplyease/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV_HeaderInAnyOrder(t *testing.T) {
	in := "qty, Budget ,Item,Material Code\n5,1000,Laptop,MAT-1\n,,,\n2,,Mouse,\n"
	rows, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []dto.ImportRow{
		{Item: "Laptop", MaterialCode: "MAT-1", Qty: "5", Budget: "1000"},
		{Item: "Mouse", Qty: "2"},
	}, rows)
}

func TestParseCSV_WithoutHeaderIsPositional(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("Desk,MAT-9,1,250\nChair\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, dto.ImportRow{Item: "Desk", MaterialCode: "MAT-9", Qty: "1", Budget: "250"}, rows[0])
	assert.Equal(t, dto.ImportRow{Item: "Chair"}, rows[1])
}

func TestParseXLSX_ReadsFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Item", "MaterialCode", "Qty", "Budget"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Monitor", "MAT-MON", 3, 450.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Cable", "", "x", ""}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Parse("upload.XLSX", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Monitor", rows[0].Item)
	assert.Equal(t, "3", rows[0].Qty)
	assert.Equal(t, "450.5", rows[0].Budget)
	assert.Equal(t, "x", rows[1].Qty)
}

func TestParse_RejectsUnknownExtension(t *testing.T) {
	_, err := Parse("prs.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTemplate_RoundTrips(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dto.ImportRow{Item: "Laptop", MaterialCode: "MAT-0001", Qty: "5", Budget: "1000"}, rows[0])
}
