package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

const pdfFileName = "predefined_tables.pdf"

func (h *Handler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var buf bytes.Buffer
	if err := h.services.ReportService.BuildPDF(r.Context(), &buf); err != nil {
		log.Err(err).Msg("error building pdf report")
		msg := msgReportUnavailable
		if errors.Is(err, store.ErrDatabaseUnavailable) {
			msg = msgDatabaseUnavailable
		}
		h.redirectWithFlash(w, r, "/dashboard", flashError, msg)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdfFileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Msg("error writing pdf")
	}
}
