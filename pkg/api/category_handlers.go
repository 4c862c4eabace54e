package api

import (
	"net/http"

	"github.com/platinummonkey/folio/pkg/httputil"
)

// listCategories handles GET /api/v1/categories?page=&size=
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	page, ok := httputil.ParseQueryPositiveIntOrError(w, r, "page")
	if !ok {
		return
	}
	size, ok := httputil.ParseQueryPositiveIntOrError(w, r, "size")
	if !ok {
		return
	}

	result, err := s.categories.List(r.Context(), page, size)
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, result)
}

// listAllCategories handles GET /api/v1/categories/-/all
func (s *Server) listAllCategories(w http.ResponseWriter, r *http.Request) {
	all, err := s.categories.ListAll(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, all)
}

// categoryTree handles GET /api/v1/categories/-/tree?name=
func (s *Server) categoryTree(w http.ResponseWriter, r *http.Request) {
	name := httputil.ParseQueryString(r, "name", "")

	tree, err := s.categories.ListAsTreeByName(r.Context(), name)
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, tree)
}

// batchCategories handles GET /api/v1/categories/-/batch?names=a,b
func (s *Server) batchCategories(w http.ResponseWriter, r *http.Request) {
	found, err := s.categories.GetByNames(r.Context(), httputil.ParseQueryList(r, "names"))
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, found)
}

// getCategory handles GET /api/v1/categories/{name}
func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	vo, err := s.categories.GetByName(r.Context(), name)
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, vo)
}

// getParentCategory handles GET /api/v1/categories/{name}/parent
func (s *Server) getParentCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	parent, err := s.categories.GetParentByName(r.Context(), name)
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, parent)
}

// listChildCategories handles GET /api/v1/categories/{name}/children
func (s *Server) listChildCategories(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	children, err := s.categories.ListChildren(r.Context(), name)
	if err != nil {
		httputil.WriteStoreError(w, r, err)
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, children)
}
