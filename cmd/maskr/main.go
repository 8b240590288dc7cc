package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/justyntemme/maskr/internal/app"
	"github.com/justyntemme/maskr/internal/config"
	"github.com/justyntemme/maskr/internal/debug"
)

var (
	debugFlag   bool
	debugCats   string
	configPath  string
	treePath    string
	catalogPath string
	catalogURL  string
	exportDir   string
	dbPath      string
)

var rootCmd = &cobra.Command{
	Use:   "maskr",
	Short: "Browse image folders and draw masks over them",
	Long: `maskr shows a folder tree next to a paginated image gallery.
Any image can be opened in the mask editor, where freehand strokes are
exported as plain text coordinate files.

Without source flags the built-in sample folders and images are used.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		manageConsole(debugFlag)
		if debugFlag {
			debug.EnableAll()
		}
		if debugCats != "" {
			debug.Configure(debugCats)
		}
		if debug.Enabled {
			log.Printf("Debug categories: %v", debug.ListEnabled())
		}

		mgr := config.NewManager(configPath)
		if err := mgr.Load(); err != nil {
			// Defaults are still usable; the window shows the parse error.
			log.Printf("Config: %v", err)
		}
		mgr.Override(func(c *config.Config) {
			if cmd.Flags().Changed("tree") {
				c.Sources.TreeManifest = treePath
			}
			if cmd.Flags().Changed("catalog") {
				c.Sources.CatalogManifest = catalogPath
			}
			if cmd.Flags().Changed("catalog-url") {
				c.Sources.CatalogURL = catalogURL
			}
			if cmd.Flags().Changed("export-dir") {
				c.Export.Directory = exportDir
			}
			if cmd.Flags().Changed("db") {
				c.Store.Path = dbPath
			}
		})

		app.Main(mgr)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config, backing up any existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ConfigPath()
		}
		backup, err := config.GenerateConfig(path)
		if err != nil {
			return err
		}
		if backup != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up existing config to %s\n", backup)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.NewManager(configPath).Path())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.config/maskr/config.json)")

	f := rootCmd.Flags()
	f.BoolVar(&debugFlag, "debug", false, "Enable verbose debug logging")
	f.StringVar(&debugCats, "debug-categories", "", "comma separated debug categories, \"all\" or \"none\"")
	f.StringVar(&treePath, "tree", "", "folder tree manifest (YAML)")
	f.StringVar(&catalogPath, "catalog", "", "image catalog manifest (YAML)")
	f.StringVar(&catalogURL, "catalog-url", "", "base URL of an HTML directory index to read images from")
	f.StringVar(&exportDir, "export-dir", "", "directory mask files are written to")
	f.StringVar(&dbPath, "db", "", "settings database file (in memory when empty)")

	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
