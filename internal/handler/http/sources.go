package http

import (
	"net/http"

	"github.com/Sumit-SC/job-search-api/internal/handler/http/respond"
)

type sourceInfo struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

type sourcesResponse struct {
	OK      bool                `json:"ok"`
	Count   int                 `json:"count"`
	Sources []sourceInfo        `json:"sources"`
	Presets map[string][]string `json:"presets,omitempty"`
}

// Sources handles GET /sources: the configured adapters, their groups, and
// the available presets.
func (a *API) Sources(w http.ResponseWriter, r *http.Request) {
	adapters := a.Registry.All()
	infos := make([]sourceInfo, 0, len(adapters))
	for _, ad := range adapters {
		infos = append(infos, sourceInfo{Name: ad.Name(), Group: ad.Group()})
	}

	respond.JSON(w, http.StatusOK, sourcesResponse{
		OK:      true,
		Count:   len(infos),
		Sources: infos,
		Presets: a.Presets,
	})
}
