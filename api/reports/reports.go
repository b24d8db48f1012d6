package reports

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"CPCPerform/api"
	"CPCPerform/api/constants"
	"CPCPerform/internal/config"
	"CPCPerform/internal/session"

	"github.com/gorilla/mux"
)

// Handlers carries the reports service dependencies: the shared upload store
// and the per-deployment knobs from services.yaml.
type Handlers struct {
	store     *session.Manager
	uploadTTL time.Duration
	fontPath  string
}

// StartReportsService runs the reports HTTP surface. The pipeline itself is
// synchronous; every request recomputes from the stored raw sheets.
func StartReportsService(cfg map[string]interface{}, store *session.Manager) {
	port := "7143"
	ttl := time.Duration(config.DefaultUploadTTLMinutes) * time.Minute
	fontPath := config.DefaultFontPath
	if cfg != nil {
		switch v := cfg["port"].(type) {
		case string:
			if v != "" {
				port = v
			}
		case int:
			port = strconv.Itoa(v)
		case float64:
			port = strconv.Itoa(int(v))
		}
		switch v := cfg["upload_ttl_minutes"].(type) {
		case int:
			if v > 0 {
				ttl = time.Duration(v) * time.Minute
			}
		case float64:
			if v > 0 {
				ttl = time.Duration(v) * time.Minute
			}
		}
		if v, ok := cfg["font_path"].(string); ok && v != "" {
			fontPath = v
		}
	}

	h := &Handlers{store: store, uploadTTL: ttl, fontPath: fontPath}

	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	})
	router.HandleFunc("/reports/upload", h.Upload).Methods("POST")
	router.HandleFunc("/reports/render", h.Render).Methods("POST")
	router.HandleFunc("/reports/export", h.Export).Methods("POST")
	router.HandleFunc("/reports/uploads/{id}", h.ListUpload).Methods("GET")

	log.Println("Reports Service started on :" + port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Reports Service failed: %v", err)
	}
}

// Upload parses the uploaded file, stores its raw sheets under a fresh upload
// id, and returns the default full-selection results for every sheet.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrFailedToParseMultipartForm)
		return
	}

	var sheets []RawSheet
	var filename string
	for _, files := range r.MultipartForm.File {
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				continue
			}
			parsed, err := ParseUpload(file, fileHeader.Filename)
			file.Close()
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			sheets = parsed
			filename = fileHeader.Filename
			break
		}
		if sheets != nil {
			break
		}
	}
	if sheets == nil {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
		return
	}

	upload := h.store.Create(filename, sheets, h.uploadTTL)
	results := ProcessSheets(sheets, nil)
	api.LogInfo("processed upload %s (%s): %d sheet(s)", upload.ID, filename, len(results))

	api.RespondWithPayload(w, true, "", map[string]interface{}{
		constants.KeyUploadID: upload.ID,
		"filename":            filename,
		constants.KeyResults:  results,
	})
}

type renderRequest struct {
	UploadID string   `json:"upload_id"`
	Sheet    string   `json:"sheet"`
	Months   []string `json:"months"`
}

// Render recomputes one sheet under a bucket label selection.
func (h *Handlers) Render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if req.UploadID == "" {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrUploadIDRequired)
		return
	}

	sheets, ok := h.uploadSheets(req.UploadID)
	if !ok {
		api.RespondWithError(w, http.StatusNotFound, constants.ErrUploadNotFound)
		return
	}
	sheet, ok := findSheet(sheets, req.Sheet)
	if !ok {
		api.RespondWithError(w, http.StatusNotFound, constants.ErrSheetNotFound)
		return
	}

	result := ProcessSheet(sheet, req.Months)
	api.RespondWithPayload(w, true, "", map[string]interface{}{
		"result": result,
	})
}

// Export builds a fresh PDF for the selection and streams it; documents are
// never cached, every request regenerates from the stored raw sheets.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return
	}
	if req.UploadID == "" {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrUploadIDRequired)
		return
	}

	sheets, ok := h.uploadSheets(req.UploadID)
	if !ok {
		api.RespondWithError(w, http.StatusNotFound, constants.ErrUploadNotFound)
		return
	}
	name := exportName(h.store, req.UploadID)
	if req.Sheet != "" {
		sheet, found := findSheet(sheets, req.Sheet)
		if !found {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrSheetNotFound)
			return
		}
		sheets = []RawSheet{sheet}
		name = req.Sheet
	}

	results := ProcessSheets(sheets, req.Months)
	doc, err := BuildReportDocument(results, config.ReportTitle, h.fontPath)
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, constants.ErrExportFailed+err.Error())
		return
	}

	labels := req.Months
	if len(labels) == 0 && len(results) > 0 {
		labels = results[0].Selected
	}
	filename := ExportFilename(name, labels)
	api.LogInfo("export %s: %d bytes", filename, len(doc))

	w.Header().Set(constants.HeaderContentType, constants.ContentTypePDF)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(doc)
}

// ListUpload reports sheet names and bucket axes for an upload, the data the
// filter collaborator needs to present its month selection.
func (h *Handlers) ListUpload(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sheets, ok := h.uploadSheets(id)
	if !ok {
		api.RespondWithError(w, http.StatusNotFound, constants.ErrUploadNotFound)
		return
	}

	type sheetInfo struct {
		Name    string      `json:"name"`
		Status  SheetStatus `json:"status"`
		Buckets []string    `json:"buckets,omitempty"`
	}
	infos := make([]sheetInfo, 0, len(sheets))
	for _, sh := range sheets {
		res := ProcessSheet(sh, nil)
		infos = append(infos, sheetInfo{Name: sh.Name, Status: res.Status, Buckets: res.Buckets})
	}
	api.RespondWithPayload(w, true, "", map[string]interface{}{
		constants.KeySheets: infos,
	})
}

func (h *Handlers) uploadSheets(id string) ([]RawSheet, bool) {
	upload, ok := h.store.Get(id)
	if !ok {
		return nil, false
	}
	sheets, ok := upload.Sheets.([]RawSheet)
	return sheets, ok
}

func findSheet(sheets []RawSheet, name string) (RawSheet, bool) {
	for _, sh := range sheets {
		if sh.Name == name {
			return sh, true
		}
	}
	return RawSheet{}, false
}

func exportName(store *session.Manager, id string) string {
	if upload, ok := store.Get(id); ok && upload.Filename != "" {
		base := filepath.Base(upload.Filename)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return ""
}
