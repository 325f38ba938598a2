package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openKDT(t *testing.T, proj model.Project) *excelize.File {
	t.Helper()
	data, err := KDTBytes(proj)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(KDTSheet, ref)
	require.NoError(t, err)
	return v
}

func TestBuildKDT_Layout(t *testing.T) {
	f := openKDT(t, buildTestProject())

	assert.Equal(t, []string{KDTSheet}, f.GetSheetList())
	assert.Equal(t, "قائمة القطع - KDT", cell(t, f, "A1"))
	assert.Equal(t, "Kitchen", cell(t, f, "B2"))
	assert.Equal(t, "Sami", cell(t, f, "B3"))
	assert.Equal(t, "0991234567", cell(t, f, "B4"))

	assert.Equal(t, "التصنيف", cell(t, f, "A6"))
	assert.Equal(t, "هامش التحريف (سم)", cell(t, f, "G6"))

	assert.Equal(t, "جوانب", cell(t, f, "A7"))
	assert.Equal(t, "100", cell(t, f, "B7"))
	assert.Equal(t, "50", cell(t, f, "C7"))
	assert.Equal(t, "2", cell(t, f, "D7"))
	assert.Equal(t, "طولي", cell(t, f, "E7"))
	assert.Equal(t, "أعلى + يسار", cell(t, f, "F7"))
	assert.Equal(t, "1.5", cell(t, f, "G7"))

	assert.Equal(t, "عرضي", cell(t, f, "E8"))
	assert.Equal(t, "بدون تحريف", cell(t, f, "F8"))
	assert.Equal(t, "0", cell(t, f, "G8"))

	assert.Equal(t, "ملخص المشروع", cell(t, f, "A11"))
	assert.Equal(t, "244", cell(t, f, "B12"))
	assert.Equal(t, "122", cell(t, f, "B13"))
	assert.Equal(t, "2", cell(t, f, "B14"))
	assert.Equal(t, "4", cell(t, f, "B15"))
	assert.Equal(t, "2.52", cell(t, f, "B16"))
}

func TestBuildKDT_OmitsBlankCustomerRows(t *testing.T) {
	proj := buildTestProject()
	proj.Name = ""
	proj.Customer = model.Customer{}
	f := openKDT(t, proj)

	assert.Equal(t, "التصنيف", cell(t, f, "A3"))
	assert.Equal(t, "جوانب", cell(t, f, "A4"))
}

func TestBuildKDT_ColumnWidths(t *testing.T) {
	f := openKDT(t, buildTestProject())
	for i, want := range []float64{20, 15, 15, 10, 15, 25, 20} {
		col, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		got, err := f.GetColWidth(KDTSheet, col)
		require.NoError(t, err)
		assert.Equal(t, want, got, "column %s", col)
	}
}

func TestWriteKDT_SavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kdt.xlsx")
	require.NoError(t, WriteKDT(path, buildTestProject()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(KDTSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "قائمة القطع - KDT", v)
}

func TestBuildKDT_NoLayout(t *testing.T) {
	_, err := BuildKDT(model.NewProject())
	assert.ErrorIs(t, err, ErrNoLayout)
}
