// Package textutil converts free-text model descriptions into
// filesystem-safe snake_case names.
package textutil
