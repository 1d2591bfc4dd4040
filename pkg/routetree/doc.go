// Package routetree resolves file-based routing conventions into URL patterns
// and middleware scope chains.
//
// A routes filesystem looks like:
//
//	api/
//	  _middleware.go        # scope marker: applies to api/ and descendants
//	  users/
//	    index.go            # GET /api/users
//	    [id].go             # GET /api/users/{id}
//	pages/
//	  index.go              # GET /
//	  blog/
//	    [slug].go           # GET /blog/{slug}
//	  docs/
//	    [...path].go        # GET /docs/*
//
// The package is purely computational: it derives patterns and scope chains
// from paths, never touching handlers. Binding patterns to handler functions
// is the framework's job.
package routetree
