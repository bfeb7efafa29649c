package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"slipgen/internal/domain/slip"
)

func TestWorkbook(t *testing.T) {
	records := []slip.SalaryRecord{
		{
			EmployeeName: "John Doe",
			MonthYear:    "November 2025",
			BasicSalary:  50000,
			HRA:          25000,
			PF:           1800,
			CreatedAt:    time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC),
		},
	}

	buf, err := Workbook(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(workbookSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)

	net, err := f.GetCellValue(workbookSheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, "73200", net)
}

func TestWorkbookEmpty(t *testing.T) {
	buf, err := Workbook(nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
