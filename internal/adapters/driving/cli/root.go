// Package cli provides the cobra command tree that drives the core
// services. Services are injected by main before Execute runs; every
// command checks for its service so a partially wired binary fails
// with a clear message instead of a panic.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
	"github.com/ferrule-labs/askdocs/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services.
var (
	ingestService   driving.IngestService
	askService      driving.AskService
	documentService driving.DocumentService
	folderService   driving.FolderService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verboseFlag bool
	ownerFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about your documents",
	Long: `askdocs ingests your documents, splits them into passages, and
answers questions grounded in their content with citations.

Documents are private to their owner: retrieval never crosses owner
boundaries.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", defaultOwner(), "owner scope for all operations")
}

// defaultOwner resolves the owner used when --owner is not given.
func defaultOwner() string {
	if owner := os.Getenv("ASKDOCS_OWNER"); owner != "" {
		return owner
	}
	return "default"
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetIngestService injects the ingest service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetAskService injects the ask service.
func SetAskService(s driving.AskService) {
	askService = s
}

// SetDocumentService injects the document service.
func SetDocumentService(s driving.DocumentService) {
	documentService = s
}

// SetFolderService injects the folder service.
func SetFolderService(s driving.FolderService) {
	folderService = s
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
