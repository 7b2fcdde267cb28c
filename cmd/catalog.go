package cmd

import (
	"fmt"
	"os"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/app"
	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/config"
	"github.com/abhisek/greekquiz/internal/ui/components"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse or import the letter and word catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List letters and words (optionally one vocabulary group)",
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetInt("group")
		kindName, _ := cmd.Flags().GetString("kind")

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cat, err := app.LoadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}

		showLetters, showWords := true, true
		if kindName != "" {
			kind, ok := catalog.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown item kind %q (want letters or words)", kindName)
			}
			showLetters, showWords = kind == catalog.KindLetter, kind == catalog.KindWord
		}
		if group != 0 {
			showLetters = false
		}

		if showLetters {
			rows := make([][]string, 0, len(cat.Letters()))
			for _, l := range cat.Letters() {
				rows = append(rows, []string{l.Symbol, l.Name, l.Sound})
			}
			lipgloss.Println(components.Table([]string{"Letter", "Name", "Sound"}, rows))
			fmt.Printf("%d letters\n", len(rows))
		}

		if showWords {
			words := cat.Words()
			if group != 0 {
				words = cat.WordsInGroup(group)
				if len(words) == 0 {
					return fmt.Errorf("no words found for group %d", group)
				}
			}
			rows := make([][]string, 0, len(words))
			for _, w := range words {
				rows = append(rows, []string{w.Greek, w.Pronunciation, w.English, strconv.Itoa(w.Group)})
			}
			lipgloss.Println(components.Table([]string{"Greek", "Pronunciation", "English", "Group"}, rows))
			fmt.Printf("%d words\n", len(rows))
		}
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import vocabulary from an .xlsx or .csv file into a JSON catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		icfg := catalog.DefaultImportConfig()
		icfg.FilePath = args[0]
		icfg.SheetName, _ = cmd.Flags().GetString("sheet")
		icfg.GreekColumn, _ = cmd.Flags().GetString("greek-col")
		icfg.EnglishColumn, _ = cmd.Flags().GetString("english-col")
		icfg.PronunciationColumn, _ = cmd.Flags().GetString("pron-col")
		icfg.GroupColumn, _ = cmd.Flags().GetString("group-col")
		icfg.StartRow, _ = cmd.Flags().GetInt("start-row")
		output, _ := cmd.Flags().GetString("output")

		words, res, err := catalog.ImportWords(icfg)
		if err != nil {
			return err
		}
		fmt.Printf("Processed %d rows: %d imported, %d skipped\n", res.TotalProcessed, res.Imported, res.Skipped)
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, "warning:", e)
		}

		cat, err := catalog.New(catalog.Default().Letters(), words)
		if err != nil {
			return err
		}
		raw, err := catalog.Encode(cat)
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		if output == "" {
			fmt.Println(string(raw))
			return nil
		}
		if err := os.WriteFile(output, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		fmt.Printf("Wrote %s (set catalog.path or GREEKQUIZ_CATALOG to use it)\n", output)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().Int("group", 0, "Only list words in this group")
	catalogListCmd.Flags().String("kind", "", "Only list letters or words")

	def := catalog.DefaultImportConfig()
	catalogImportCmd.Flags().String("sheet", "", "Worksheet name (default: first sheet)")
	catalogImportCmd.Flags().String("greek-col", def.GreekColumn, "Column holding the Greek spelling")
	catalogImportCmd.Flags().String("english-col", def.EnglishColumn, "Column holding the English meanings")
	catalogImportCmd.Flags().String("pron-col", def.PronunciationColumn, "Column holding the pronunciation")
	catalogImportCmd.Flags().String("group-col", def.GroupColumn, "Column holding the group number")
	catalogImportCmd.Flags().Int("start-row", def.StartRow, "First data row (1-based)")
	catalogImportCmd.Flags().StringP("output", "o", "", "Write the JSON catalog to this file instead of stdout")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}
