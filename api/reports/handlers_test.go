package reports

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CPCPerform/internal/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers() *Handlers {
	return &Handlers{
		store:     session.NewManager(),
		uploadTTL: time.Minute,
		fontPath:  "./no/such/font.ttf",
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUploadHandler(t *testing.T) {
	t.Run("multipart csv stored and processed", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "po.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte("OUTLET,PO REF NO,PO DATE,PO VALUE\nABC-12,P1,01-01-2024,100\n"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/reports/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		h := newTestHandlers()
		h.Upload(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, true, resp["success"])
		assert.NotEmpty(t, resp["upload_id"])
		require.Len(t, resp["results"], 1)
	})

	t.Run("no file is a bad request", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/reports/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		newTestHandlers().Upload(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRenderHandler(t *testing.T) {
	t.Run("recomputes a stored sheet", func(t *testing.T) {
		h := newTestHandlers()
		upload := h.store.Create("po.csv", []RawSheet{scenarioSheet()}, time.Minute)

		body := `{"upload_id":"` + upload.ID + `","sheet":"Sheet1"}`
		rec := httptest.NewRecorder()
		h.Render(rec, httptest.NewRequest(http.MethodPost, "/reports/render", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, true, resp["success"])
		assert.NotNil(t, resp["result"])
	})

	t.Run("expired upload is not found", func(t *testing.T) {
		h := newTestHandlers()
		upload := h.store.Create("po.csv", []RawSheet{scenarioSheet()}, -time.Minute)

		body := `{"upload_id":"` + upload.ID + `","sheet":"Sheet1"}`
		rec := httptest.NewRecorder()
		h.Render(rec, httptest.NewRequest(http.MethodPost, "/reports/render", strings.NewReader(body)))

		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "upload not found or expired", resp["error"])
	})

	t.Run("missing upload_id is a bad request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestHandlers().Render(rec, httptest.NewRequest(http.MethodPost, "/reports/render", strings.NewReader(`{"sheet":"Sheet1"}`)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "upload_id required", decodeResponse(t, rec)["error"])
	})

	t.Run("unknown sheet is not found", func(t *testing.T) {
		h := newTestHandlers()
		upload := h.store.Create("po.csv", []RawSheet{scenarioSheet()}, time.Minute)

		body := `{"upload_id":"` + upload.ID + `","sheet":"Nope"}`
		rec := httptest.NewRecorder()
		h.Render(rec, httptest.NewRequest(http.MethodPost, "/reports/render", strings.NewReader(body)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestExportHandler(t *testing.T) {
	t.Run("streams a fresh document", func(t *testing.T) {
		h := newTestHandlers()
		upload := h.store.Create("po.csv", []RawSheet{scenarioSheet()}, time.Minute)

		body := `{"upload_id":"` + upload.ID + `"}`
		rec := httptest.NewRecorder()
		h.Export(rec, httptest.NewRequest(http.MethodPost, "/reports/export", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "CPC_Report_po_Jan24_Feb24.pdf")
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		require.True(t, rec.Body.Len() > 4)
		assert.Equal(t, "%PDF", rec.Body.String()[:4])
	})

	t.Run("expired upload is not found", func(t *testing.T) {
		h := newTestHandlers()
		upload := h.store.Create("po.csv", []RawSheet{scenarioSheet()}, -time.Minute)

		body := `{"upload_id":"` + upload.ID + `"}`
		rec := httptest.NewRecorder()
		h.Export(rec, httptest.NewRequest(http.MethodPost, "/reports/export", strings.NewReader(body)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListUploadHandler(t *testing.T) {
	h := newTestHandlers()
	upload := h.store.Create("po.csv", []RawSheet{scenarioSheet()}, time.Minute)

	router := mux.NewRouter()
	router.HandleFunc("/reports/uploads/{id}", h.ListUpload).Methods("GET")

	t.Run("reports sheet names and bucket axes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/uploads/"+upload.ID, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		sheets, ok := resp["sheets"].([]interface{})
		require.True(t, ok)
		require.Len(t, sheets, 1)
		info, ok := sheets[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Sheet1", info["name"])
		assert.Equal(t, []interface{}{"Jan'24", "Feb'24"}, info["buckets"])
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/uploads/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
