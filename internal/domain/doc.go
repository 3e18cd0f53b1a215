// Package domain contains the core model for roman: the numeral codec, its
// error taxonomy, and the batch/report types the tool surface works with.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// net/http, or the filesystem. Infra/adapters map into/from these types.
package domain
