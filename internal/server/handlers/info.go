package handlers

import (
	"net/http"
	"slices"

	"github.com/optimade/optimade-go/internal/server/response"
	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/entries"
)

// versionsBody is the text/csv answer of /versions: a header and the major version.
const versionsBody = "version\n1\n"

// HandleInfo handles GET /info.
func (h *Handlers) HandleInfo(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Parser().ParseSingle(r.URL.Query())
	if err != nil {
		response.ErrorFromType(w, r, err)
		return
	}
	if err := checkFormat(p); err != nil {
		response.ErrorFromType(w, r, err)
		return
	}

	base, err := h.baseURL(r)
	if err != nil {
		response.ErrorFromType(w, r, err)
		return
	}
	reg, err := h.app.Registry()
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	entryTypes := slices.DeleteFunc(reg.Names(), func(n string) bool {
		return n == entries.TypeLinks
	})
	endpoints := append([]string{"info", entries.TypeLinks}, entryTypes...)

	one := 1
	response.OK(w, response.Document{
		Data: map[string]any{
			"id":   "/",
			"type": "info",
			"attributes": map[string]any{
				"api_version": constants.APIVersion,
				"available_api_versions": []map[string]string{
					{"url": base + "/v1", "version": constants.APIVersion},
				},
				"formats":               []string{"json"},
				"entry_types_by_format": map[string][]string{"json": entryTypes},
				"available_endpoints":   endpoints,
				"is_index":              false,
			},
		},
		Meta: h.meta(r, 1, &one, false, unrecognizedWarnings(p.Unrecognized())),
	})
}

// HandleVersions handles GET /versions.
func (h *Handlers) HandleVersions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; header=present")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(versionsBody))
}
