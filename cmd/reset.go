package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/greekquiz/internal/catalog"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		word, _ := cmd.Flags().GetString("word")
		letter, _ := cmd.Flags().GetString("letter")
		if word != "" && letter != "" {
			return fmt.Errorf("use --word or --letter, not both")
		}

		target := "ALL progress"
		switch {
		case word != "":
			target = fmt.Sprintf("progress for word %q", word)
		case letter != "":
			target = fmt.Sprintf("progress for letter %q", letter)
		}
		if !yes && !confirm(fmt.Sprintf("Reset %s?", target)) {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		switch {
		case word != "":
			err = a.Controller.ResetItem(ctx, catalog.KindWord, word)
		case letter != "":
			err = a.Controller.ResetItem(ctx, catalog.KindLetter, letter)
		default:
			err = a.Controller.ResetAll(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Reset %s.\n", target)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().String("word", "", "Reset a single word")
	resetCmd.Flags().String("letter", "", "Reset a single letter")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
