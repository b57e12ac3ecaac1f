// Package browserslist resolves the browser compatibility queries handed to
// autoprefixer. It reads the same sources as the JavaScript browserslist
// package but never evaluates the queries.
package browserslist
