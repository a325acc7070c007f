// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfextract CLI. The root command
// extracts the text layer of one PDF into <name>_extracted.txt next to it
// and prints a preview; subcommands search the optional page index and
// print the version.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfextract/internal/convert"
	"github.com/pdiddy/pdfextract/internal/extract"
	"github.com/pdiddy/pdfextract/internal/pageindex"
	"github.com/pdiddy/pdfextract/internal/secrets"
	"github.com/pdiddy/pdfextract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd extracts text from a single PDF.
var rootCmd = &cobra.Command{
	Use:   "pdfextract [pdf_path]",
	Short: "Extract the text of a PDF into a sibling text file",
	Long: `pdfextract reads the text layer of a PDF page by page and writes every
page that has text to <name>_extracted.txt in the same directory, each
page introduced by a "--- PAGE <n> ---" line. Pages without text are
skipped; page numbers always refer to the position in the source PDF.

When no path is given, default_path from the configuration is used.
The command exits with status 1 when the file does not exist or no text
could be extracted.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfextract.yaml or ~/.config/pdfextract/config.yaml)")
	rootCmd.PersistentFlags().String("index-db", "", "SQLite page index to update after extraction and to search")

	rootCmd.Flags().String("backend", string(types.BackendNative), "text reader: native or pdftotext")
	rootCmd.Flags().Int("preview-chars", types.DefaultPreviewChars, "number of characters to print after extraction")
	rootCmd.Flags().Bool("metadata", false, "also write <name>_extracted.yaml describing the run")
	rootCmd.Flags().Bool("normalize", false, "apply Unicode NFC normalization to page text")
	rootCmd.Flags().String("password", "", "user password for encrypted PDFs")

	for key, flag := range map[string]string{
		"backend":       "backend",
		"preview_chars": "preview-chars",
		"metadata":      "metadata",
		"normalize":     "normalize",
		"password":      "password",
	} {
		_ = viper.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
	_ = viper.BindPFlag("index_db", rootCmd.PersistentFlags().Lookup("index-db"))
	viper.SetDefault("default_path", types.DefaultPDFPath)
	viper.SetDefault("secrets_dir", ".secrets")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfextract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfextract"))
		}
	}

	viper.SetEnvPrefix("PDFEXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := viper.GetString("default_path")
	if len(args) > 0 {
		pdfPath = args[0]
	}
	if err := convert.CheckInput(pdfPath); err != nil {
		return err
	}

	cfg, err := extractionConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opener, err := extract.NewOpener(cfg)
	if err != nil {
		return err
	}

	opts := convert.Options{
		Extract: extract.Options{Normalize: cfg.Normalize},
		Output:  outputConfig(),
	}
	rec, res, err := convert.ConvertFile(opener, pdfPath, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if opts.Output.IndexDB == "" {
		return nil
	}
	store, err := pageindex.NewStore(opts.Output.IndexDB)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Put(cmd.Context(), rec, res.Sections); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Indexed %d page(s) in %s\n", len(res.Sections), opts.Output.IndexDB)
	return nil
}

// extractionConfig reads backend settings. The password falls back to the
// pdf-password file in the secrets directory when not configured.
func extractionConfig(w io.Writer) (types.ExtractionConfig, error) {
	s, err := secrets.Load(viper.GetString("secrets_dir"), w)
	if err != nil {
		return types.ExtractionConfig{}, err
	}
	return types.ExtractionConfig{
		Backend:   types.Backend(viper.GetString("backend")),
		Password:  s.Value(secrets.KeyPDFPassword, viper.GetString("password")),
		Normalize: viper.GetBool("normalize"),
	}, nil
}

func outputConfig() types.OutputConfig {
	return types.OutputConfig{
		PreviewChars: viper.GetInt("preview_chars"),
		Metadata:     viper.GetBool("metadata"),
		IndexDB:      viper.GetString("index_db"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
