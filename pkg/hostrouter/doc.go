// Package hostrouter routes requests by Host header, useful when one
// process serves an app on the apex domain and tenant sites on
// wildcard subdomains.
//
//	hr := hostrouter.New(appHandler).
//	    Map("api.example.com", apiHandler).
//	    Map("*.example.com", tenantHandler)
//	http.ListenAndServe(":8080", hr)
package hostrouter
