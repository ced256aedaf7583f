package server

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onlybana/qr-code-generator/internal/config"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, cells map[string]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartRequest(t *testing.T, file []byte, theme string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "tokens.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	if theme != "" {
		require.NoError(t, mw.WriteField("theme", theme))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) qrbatch.Response {
	t.Helper()
	var resp qrbatch.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestConvertSuccess(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()
	file := workbookBytes(t, map[string]string{"A1": "TG_001", "B1": "foo", "A2": "bar", "B2": "TG_002"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, file, "dark"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	resp := decode(t, rec)
	assert.Empty(t, resp.Error)
	data, err := base64.StdEncoding.DecodeString(resp.Archive)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"qr_TG_001.svg", "qr_TG_002.svg"}, names)
}

func TestConvertMissingFile(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, nil, "light"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, qrbatch.Response{Error: "No file uploaded"}, decode(t, rec))
}

func TestConvertNotMultipart(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader("theme=dark"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode(t, rec).Error)
}

func TestConvertDecodeError(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, []byte("not a workbook"), ""))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode(t, rec)
	assert.Empty(t, resp.Archive)
	assert.Contains(t, resp.Error, "invalid spreadsheet format")
}

func TestConvertTooLarge(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxUploadBytes = 64
	h := New(cfg, nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, bytes.Repeat([]byte("x"), 4096), ""))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestConvertRequiresPost(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/convert", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHealth(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	h := New(config.DefaultConfig(), nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(qrbatch.ErrNoFile))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&qrbatch.DecodeError{Err: assert.AnError}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&qrbatch.PackagingError{Err: assert.AnError}))
}

func TestConvertDefaultThemeFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = "dark"
	h := New(cfg, nil).Handler()
	file := workbookBytes(t, map[string]string{"A1": "TG_7"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, file, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := base64.StdEncoding.DecodeString(decode(t, rec).Archive)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(content), `fill="#ffffff">TG_7</text>`)
}
