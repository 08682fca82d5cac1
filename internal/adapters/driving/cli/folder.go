package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Organise documents into folders",
	Long: `Create, list, or delete folders. Deleting a folder moves its documents
to the default "root" folder; nothing is lost.`,
}

var folderCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderCreate,
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your folders",
	Args:  cobra.NoArgs,
	RunE:  runFolderList,
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a folder, moving its documents to root",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderDelete,
}

func init() {
	folderCmd.AddCommand(folderCreateCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderDeleteCmd)
	rootCmd.AddCommand(folderCmd)
}

func runFolderCreate(cmd *cobra.Command, args []string) error {
	if folderService == nil {
		return errors.New("folder service not configured")
	}

	folder, err := folderService.Create(context.Background(), ownerFlag, args[0])
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	cmd.Printf("Created folder %q.\n", folder.Name)
	return nil
}

func runFolderList(cmd *cobra.Command, _ []string) error {
	if folderService == nil {
		return errors.New("folder service not configured")
	}

	folders, err := folderService.List(context.Background(), ownerFlag)
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}

	// The default folder always exists.
	cmd.Println("  root")
	for _, folder := range folders {
		cmd.Printf("  %s\n", folder.Name)
	}
	return nil
}

func runFolderDelete(cmd *cobra.Command, args []string) error {
	if folderService == nil {
		return errors.New("folder service not configured")
	}

	if err := folderService.Delete(context.Background(), ownerFlag, args[0]); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	cmd.Printf("Deleted folder %q. Its documents moved to \"root\".\n", args[0])
	return nil
}
