package config

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/splash/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the splash.

A theme is either built in (selected with tui.theme) or a YAML file
(selected with tui.theme_file). Theme files may set a base theme and
override any of its colors.

Use 'theme list' to see all available themes.
Use 'theme export' to create a template for a theme file.
Use 'theme info' to view the colors of a theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a built-in theme to YAML as a starting point for a theme file.

If no output file is specified, the YAML is printed to stdout.

Examples:
  splash config theme export default             # Print default theme to stdout
  splash config theme export ember my-theme.yaml # Save ember theme to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	current := viper.GetString("tui.theme")

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		if name == current {
			fmt.Fprintf(out, "  - %s (current)\n", name)
		} else {
			fmt.Fprintf(out, "  - %s\n", name)
		}
	}

	if file := viper.GetString("tui.theme_file"); file != "" {
		fmt.Fprintf(out, "\nTheme file: %s\n", file)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !styles.IsBuiltinTheme(name) {
		return fmt.Errorf("unknown theme: %s", name)
	}

	data, err := styles.MarshalTheme(name, styles.GetPalette(styles.ThemeName(name)))
	if err != nil {
		return fmt.Errorf("failed to export theme: %w", err)
	}

	if len(args) == 1 {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	outputFile := args[1]
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported theme '%s' to %s\n", name, outputFile)
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !styles.IsBuiltinTheme(name) {
		return fmt.Errorf("unknown theme: %s", name)
	}
	p := styles.GetPalette(styles.ThemeName(name))
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Theme: %s\n\n", name)
	for _, c := range []struct {
		label string
		color lipgloss.Color
	}{
		{"Sky top", p.SkyTop},
		{"Sky bottom", p.SkyBottom},
		{"Overlay", p.Overlay},
		{"Button", p.Button},
		{"Button border", p.ButtonBorder},
		{"Backdrop", p.Backdrop},
		{"Text", p.Text},
		{"Muted", p.Muted},
	} {
		swatch := lipgloss.NewStyle().Foreground(c.color).Render("██")
		fmt.Fprintf(out, "  %-14s %s %s\n", c.label, swatch, c.color)
	}
	return nil
}
