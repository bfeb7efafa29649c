package slipshandler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slipgen/internal/domain/export"
	"slipgen/internal/domain/render"
	"slipgen/internal/domain/slip"
	slipshandler "slipgen/internal/transport/http/handlers/slips"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	handler := slipshandler.NewHandler(slip.NewMemStore(), &export.Exporter{
		Capture: render.CaptureOptions{Scale: 1},
	})
	handler.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func createSlip(t *testing.T, ts *httptest.Server, fields map[string]any) slip.SalaryRecord {
	t.Helper()

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/salary-slips", fields)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	var rec slip.SalaryRecord
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	return rec
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	created := createSlip(t, ts, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
	})
	require.NotEmpty(t, created.ID)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/salary-slips/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	var got slip.SalaryRecord
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "John Doe", got.EmployeeName)
	assert.Equal(t, "", got.CompanyName)
	assert.Zero(t, got.BasicSalary)
	assert.Zero(t, got.TDS)
}

func TestCreateWithoutEmployeeNameFails(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/salary-slips", map[string]any{
		"monthYear": "November 2025",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "employeeName is required", env.Error)

	resp, env = doJSON(t, http.MethodGet, ts.URL+"/salary-slips", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)), "failed create must not persist")
}

func TestListNewestFirst(t *testing.T) {
	ts := newTestServer(t)

	for _, month := range []string{"September 2025", "October 2025", "November 2025"} {
		createSlip(t, ts, map[string]any{"employeeName": "John Doe", "monthYear": month})
	}

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/salary-slips", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []slip.SalaryRecord
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].CreatedAt.Before(records[i].CreatedAt),
			"records must be ordered newest first")
	}
}

func TestGetUnknownID(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/salary-slips/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Slip not found", env.Error)
}

func TestUpdatePartialBody(t *testing.T) {
	ts := newTestServer(t)

	created := createSlip(t, ts, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
		"basicSalary":  50000,
	})

	resp, env := doJSON(t, http.MethodPut, ts.URL+"/salary-slips/"+created.ID, map[string]any{
		"hra": 25000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated slip.SalaryRecord
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 25000.0, updated.HRA)
	assert.Equal(t, 50000.0, updated.BasicSalary)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateRequiresID(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doJSON(t, http.MethodPut, ts.URL+"/salary-slips", map[string]any{"hra": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ID is required", env.Error)

	resp, env = doJSON(t, http.MethodPut, ts.URL+"/salary-slips?id=no-such-id", map[string]any{"hra": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Slip not found", env.Error)
}

func TestDeleteTwice(t *testing.T) {
	ts := newTestServer(t)

	created := createSlip(t, ts, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
	})

	resp, env := doJSON(t, http.MethodDelete, ts.URL+"/salary-slips/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "{}", strings.TrimSpace(string(env.Data)))

	resp, env = doJSON(t, http.MethodDelete, ts.URL+"/salary-slips/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Slip not found", env.Error)
}

func TestDeleteRequiresID(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doJSON(t, http.MethodDelete, ts.URL+"/salary-slips", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ID is required", env.Error)
}

func TestDownloadPDF(t *testing.T) {
	ts := newTestServer(t)

	created := createSlip(t, ts, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
		"basicSalary":  50000,
	})

	resp, err := http.Get(ts.URL + "/salary-slips/" + created.ID + "/pdf")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"),
		fmt.Sprintf("Salary_Slip_%s_%s.pdf", "John Doe", "November 2025"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestPreviewPDFUsesDraftFilename(t *testing.T) {
	ts := newTestServer(t)

	payload, err := json.Marshal(map[string]any{"employeeName": "John Doe"})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/salary-slips/preview/pdf", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Salary_Slip_Draft.pdf")
}

func TestWorkbookDownload(t *testing.T) {
	ts := newTestServer(t)

	createSlip(t, ts, map[string]any{"employeeName": "John Doe", "monthYear": "November 2025"})

	resp, err := http.Get(ts.URL + "/salary-slips/export.xlsx")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
}
