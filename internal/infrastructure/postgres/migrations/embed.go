// Package migrations contiene el esquema SQL embebido, aplicado con goose.
package migrations

import "embed"

// FS archivos *.sql de migración.
//
//go:embed *.sql
var FS embed.FS
