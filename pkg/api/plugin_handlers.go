package api

import (
	"net/http"

	"github.com/platinummonkey/folio/pkg/httputil"
	"github.com/platinummonkey/folio/pkg/plugins"
)

// AvailabilityResponse is returned by the plugin availability endpoint
type AvailabilityResponse struct {
	Name      string `json:"name"`
	Requires  string `json:"requires,omitempty"`
	Available bool   `json:"available"`
}

// pluginAvailable handles GET /api/v1/plugins/{name}/available?requires=
func (s *Server) pluginAvailable(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	requires := httputil.ParseQueryString(r, "requires", "")
	if requires != "" {
		if _, err := plugins.ParseRequirement(requires); err != nil {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
	}

	var (
		available bool
		err       error
	)
	if requires == "" {
		available, err = s.plugins.Available(r.Context(), name)
	} else {
		available, err = s.plugins.AvailableVersion(r.Context(), name, requires)
	}
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}

	httputil.WriteJSONOrError(w, r, http.StatusOK, AvailabilityResponse{
		Name:      name,
		Requires:  requires,
		Available: available,
	})
}
