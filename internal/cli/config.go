package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/backup"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/ui"
	"github.com/hearthview/hearth/internal/util"
)

// configCmd works with the hub's own configuration document, not hearth's
// local .hearth.yaml.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, back up, and restore the hub configuration",
	Long: `Work with the configuration document the hub's config service
holds: the key/value settings of the hub itself, not hearth's local
.hearth.yaml.

Sensitive values print masked; pass --reveal to see them.

Examples:
  hearth config show
  hearth config show --reveal
  hearth config export hub-backup.json
  hearth config import hub-backup.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the hub configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand()
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Back up the hub configuration to JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return configExportCommand(target)
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the hub configuration from a backup",
	Long: `Validate a backup file and push it to the config service. The hub
applies the whole document at once; there is no partial restore.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configImportCommand(args[0])
	},
}

var (
	configReveal bool
	configJSON   bool
	importYes    bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configImportCmd)

	for _, c := range []*cobra.Command{configCmd, configShowCmd} {
		c.Flags().BoolVar(&configReveal, "reveal", false, "show sensitive values in clear text")
		c.Flags().BoolVar(&configJSON, "json", false, "output in JSON format")
	}
	configImportCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")
}

// configShowCommand fetches and prints the hub config document.
func configShowCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := commandContext(cfg)
	defer cancel()

	doc, err := client.ConfigDocument(ctx)
	if err != nil {
		return err
	}

	fields := backup.Mask(doc.Fields, configReveal)

	if configJSON {
		masked := *doc
		masked.Fields = fields
		return WriteJSONSuccess(os.Stdout, masked)
	}

	fmt.Printf("Hub configuration (version %d, %d keys)\n\n", doc.Version, len(doc.Fields))
	fmt.Println(ui.RenderConfigTable(fields))

	if n := backup.SensitiveCount(doc.Fields); n > 0 && !configReveal {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Println()
		fmt.Println(muted.Render(fmt.Sprintf("%d sensitive %s masked; --reveal shows them.",
			n, util.Pluralize(n, "value", "values"))))
	}
	return nil
}

// configExportCommand writes the hub config document to a file or stdout.
func configExportCommand(target string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := commandContext(cfg)
	defer cancel()

	var w io.Writer = os.Stdout
	if target != "" {
		f, err := os.Create(target)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrBackup,
				"Cannot write "+target,
				"Check the path and directory permissions.")
		}
		defer f.Close()
		w = f
	}

	if err := backup.Export(ctx, client, w); err != nil {
		return err
	}

	if target != "" {
		okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
		fmt.Printf("%s Backed up hub config to %s\n", okStyle.Render(ui.SymbolSuccess), target)
	}
	return nil
}

// configImportCommand validates a backup and pushes it to the hub.
func configImportCommand(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrBackup,
			"Cannot read "+path,
			"Backups come from 'hearth config export'.")
	}
	defer f.Close()

	// Decode up front so the confirmation can say what it is about to do.
	doc, err := backup.Decode(f)
	if err != nil {
		return err
	}

	if !importYes {
		ok, err := confirmRestore(cfg.Hub.Name, doc)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	client := newClient(cfg)
	ctx, cancel := commandContext(cfg)
	defer cancel()

	if err := backup.Restore(ctx, client, doc); err != nil {
		return err
	}

	okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Printf("%s Restored %d keys (document version %d)\n",
		okStyle.Render(ui.SymbolSuccess), len(doc.Fields), doc.Version)
	return nil
}

// confirmRestore prompts before overwriting the hub's live configuration.
func confirmRestore(hub string, doc *api.ConfigDocument) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New(errors.ErrInput,
			"Refusing to restore without confirmation",
			"Pass --yes when running non-interactively.")
	}

	summary := fmt.Sprintf("%d keys", len(doc.Fields))
	if n := backup.SensitiveCount(doc.Fields); n > 0 {
		summary += fmt.Sprintf(", %d sensitive", n)
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Replace the configuration of hub '%s'?", hub)).
				Description(fmt.Sprintf("The backup holds %s.", summary)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read confirmation",
			"Pass --yes to skip the prompt.")
	}
	return confirmed, nil
}
