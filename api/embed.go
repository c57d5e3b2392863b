// Package api holds the OpenAPI document served on /openapi.yml and used for
// request validation.
package api

import _ "embed"

//go:embed openapi.yml
var Spec []byte
