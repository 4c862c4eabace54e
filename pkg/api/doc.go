// Package api provides the HTTP REST API server for Folio.
//
// # Overview
//
// The API exposes the category and plugin finders as read-only JSON endpoints
// for themes and other clients. It is built on gorilla/mux and wrapped by
// otelhttp plus the httputil middleware chain.
//
// # Routes
//
//	GET /api/v1/categories?page=&size=        one page of visible categories
//	GET /api/v1/categories/-/all              every visible category
//	GET /api/v1/categories/-/tree?name=       category forest, or one subtree
//	GET /api/v1/categories/-/batch?names=a,b  categories by name, in request order
//	GET /api/v1/categories/{name}             one category
//	GET /api/v1/categories/{name}/parent      the parent of a category
//	GET /api/v1/categories/{name}/children    a category and its descendants
//	GET /api/v1/plugins/{name}/available      plugin availability, optional ?requires=
//
// Operational routes /healthz, /readyz and /metrics are mounted when the
// matching Options fields are set.
//
// # Errors
//
// Invalid paging parameters and version requirements answer 400. Missing
// categories answer 404. Any other store failure answers 500 with the cause
// logged under the request ID.
//
// # Usage
//
//	server := api.NewServer(categoryFinder, pluginFinder, api.Options{
//		Logger:   logger,
//		Metrics:  metrics,
//		Registry: registry,
//		Health:   checker,
//	})
//	http.ListenAndServe(":8080", server)
package api
