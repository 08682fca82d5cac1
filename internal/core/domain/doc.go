// Package domain contains the core business entities for askdocs:
// documents, passages, folders and retrieval results. It has no
// dependencies on adapters or infrastructure.
package domain
