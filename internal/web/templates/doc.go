// Package templates holds the HTML components rendered by the web server.
// The *_templ.go files are generated from the .templ sources with
// `templ generate`.
package templates
