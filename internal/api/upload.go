package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/resumeforge/internal/parser"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// upload is the file part of a multipart request.
type upload struct {
	Filename string
	Data     []byte
}

// readUpload parses the multipart form and reads the "file" part. With
// docxOnly set, anything but a .docx is rejected. On failure it writes the
// error response and returns false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, docxOnly bool) (upload, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	// Form values stay in memory; only spooled file parts are removed.
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case docxOnly && ext != ".docx":
		jsonError(w, fmt.Sprintf("only .docx resumes can be edited, got %q", ext), http.StatusBadRequest)
		return upload{}, false
	case !parser.IsSupportedExtension(filename):
		jsonError(w, fmt.Sprintf("unsupported file type: %s", ext), http.StatusBadRequest)
		return upload{}, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return upload{}, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return upload{}, false
	}
	return upload{Filename: filename, Data: data}, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDocx sends data as a .docx attachment.
func (s *Server) writeDocx(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.log.Warn("write document response failed", "filename", filename, "bytes", len(data), "error", err)
	}
}

// tailoredName is the download name of an edited resume.
func tailoredName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + "_tailored.docx"
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
