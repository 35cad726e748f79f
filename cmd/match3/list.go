package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/boards"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var flagBoardDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and fixture boards",
	Long: `Shows the registered game modes and the fixture boards that can be
passed to 'play --board' or 'analyze'.

Boards from --dir are listed after the builtin ones; files that fail to
parse or validate are skipped with a warning.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagBoardDir, "dir", "", "Also list board files under this directory")
}

func runList(cmd *cobra.Command, args []string) error {
	games := registry.List()

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	maxTitleLen := 5 // "Title" header
	for _, g := range games {
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Description)
	}

	list, err := boards.Builtin()
	if err != nil {
		return err
	}
	if flagBoardDir != "" {
		extra, dirErr := loadBoardDir(flagBoardDir)
		if dirErr != nil {
			return dirErr
		}
		list = append(list, extra...)
	}

	fmt.Println()
	fmt.Println("Fixture boards:")
	fmt.Println()
	printBoards(list)

	fmt.Println()
	fmt.Println("Run 'match3 play' to play or 'match3 analyze <board>' to inspect a board.")
	return nil
}

// loadBoardDir loads every valid board file under dir.
func loadBoardDir(dir string) ([]boards.Board, error) {
	loader := boards.NewLoader(dir)
	loader.Logger = logger
	return loader.LoadAll()
}

func printBoards(list []boards.Board) {
	maxIDLen := 2
	for _, b := range list {
		maxIDLen = max(maxIDLen, len(b.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Size", "Types", "Description")
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "-----------")
	for _, b := range list {
		size := fmt.Sprintf("%dx%d", b.Width(), b.Height())
		fmt.Printf("  %-*s  %-5s  %-5d  %s\n", maxIDLen, b.ID, size, b.ItemTypes, b.Description)
	}
}
