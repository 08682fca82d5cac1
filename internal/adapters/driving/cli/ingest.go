package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
)

var (
	ingestTitle  string
	ingestType   string
	ingestFolder string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document",
	Long: `Extracts text from a file, splits it into passages, embeds them and
stores the result. Supported types: txt, md, json, pdf.

The type is inferred from the file extension unless --type is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (defaults to the file name)")
	ingestCmd.Flags().StringVar(&ingestType, "type", "", "document type: txt, md, json, pdf")
	ingestCmd.Flags().StringVarP(&ingestFolder, "folder", "f", "", "destination folder (default \"root\")")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	raw, err := os.ReadFile(path) //nolint:gosec // User-supplied path is the point of the command
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	docType, err := resolveType(path, ingestType)
	if err != nil {
		return err
	}

	title := ingestTitle
	if title == "" {
		title = filepath.Base(path)
	}

	result, err := ingestService.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: ownerFlag,
		Title:   title,
		Type:    docType,
		Folder:  ingestFolder,
		Raw:     raw,
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %q: %d passages (id: %s)\n", result.Title, result.PassageCount, result.DocumentID)
	if result.Degraded {
		cmd.Println("Warning: embedding provider unavailable, stored fallback vectors.")
		cmd.Println("Retrieval quality is degraded until the document is re-ingested.")
	}
	return nil
}

// resolveType picks the document type from the --type flag or the file
// extension.
func resolveType(path, explicit string) (domain.DocumentType, error) {
	if explicit != "" {
		t := domain.DocumentType(strings.ToLower(explicit))
		if !t.Valid() {
			return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, explicit)
		}
		return t, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "txt", "text":
		return domain.TypeText, nil
	case "md", "markdown":
		return domain.TypeMarkdown, nil
	case "json":
		return domain.TypeJSON, nil
	case "pdf":
		return domain.TypePDF, nil
	}
	return "", fmt.Errorf("%w: cannot infer type from %q, use --type", domain.ErrUnsupportedType, path)
}
