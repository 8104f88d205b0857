package cmd

import (
	"fmt"
	"os"

	"lr2immich/core/catalog"
	"lr2immich/core/config"
	"lr2immich/core/immich"
	"lr2immich/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// albumsCmd is the parent command for album listing operations.
var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List collections and albums on either side",
}

// albumsListCmd lists the syncable collections of the catalog.
var albumsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Lightroom collections that would be synced",
	Run: func(cmd *cobra.Command, args []string) {
		runAlbumsList(cmd)
	},
}

// albumsRemoteCmd lists the albums visible on the Immich server.
var albumsRemoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "List albums on the Immich server",
	Run: func(cmd *cobra.Command, args []string) {
		runAlbumsRemote(cmd)
	},
}

func init() {
	albumsCmd.AddCommand(albumsListCmd, albumsRemoteCmd)
	RootCmd.AddCommand(albumsCmd)
}

func runAlbumsList(cmd *cobra.Command) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		logg.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer cat.Close()

	collections, err := cat.Collections(cmd.Context())
	if err != nil {
		logg.Fatal("Failed to list collections", zap.Error(err))
	}

	fmt.Println("\n--- Lightroom Collections ---")
	for _, col := range collections {
		refs, err := cat.Assets(cmd.Context(), col.ID)
		if err != nil {
			logg.Fatal("Failed to read collection", zap.String("collection", col.Name), zap.Error(err))
		}
		marker := ""
		if col.Smart {
			marker = "  (smart)"
		}
		fmt.Printf("%-55s %6d assets%s\n", col.Name, len(refs), marker)
	}
	fmt.Println("-----------------------------")
	fmt.Printf("%d collections\n", len(collections))
}

func runAlbumsRemote(cmd *cobra.Command) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	client := immich.NewClient(cfg.Immich)
	albums, err := client.AllAlbums(cmd.Context())
	if err != nil {
		logg.Fatal("Failed to list albums", zap.Error(err))
	}

	fmt.Println("\n--- Immich Albums ---")
	for _, album := range albums {
		fmt.Printf("%-55s %6d assets  %s\n", album.Name, album.AssetCount, album.ID)
	}
	fmt.Println("---------------------")
	fmt.Printf("%d albums\n", len(albums))
}
