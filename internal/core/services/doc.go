// Package services contains the core application logic: ingestion,
// retrieval, answer generation, and document, folder and settings
// management. Services depend only on the port interfaces and are
// wired to concrete adapters at startup.
package services
