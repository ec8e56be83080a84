package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/deck"
	"github.com/matzehuels/nameplate/pkg/names"
)

// dealCommand creates the deal command, which shuffles names onto cards.
func (c *CLI) dealCommand() *cobra.Command {
	var (
		in       namesInput
		seed     uint64
		asJSON   bool
		overflow string
	)

	cmd := &cobra.Command{
		Use:   "deal [names...]",
		Short: "Deal names onto shuffled cards",
		Long: `Deal names onto shuffled cards.

Each name is given the next card of a freshly shuffled 52-card deck. The
card id is the deck slot and stays with the name for as long as the board
lives. Names beyond 52 are dropped (overflow "cap") or rejected ("reject").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := in.read(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			policy, err := c.overflowPolicy(overflow)
			if err != nil {
				return err
			}
			rng, used := c.newRandom(seed)
			cards, dropped, err := deck.Deal(list, rng, policy)
			if err != nil {
				return err
			}
			if dropped > 0 {
				printWarning("%d names did not fit on the deck and were dropped", dropped)
			}
			if asJSON {
				return writeCardsJSON(cmd.OutOrStdout(), cards)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dealTable(cards))
			printDetail("seed %d", used)
			return nil
		},
	}

	in.addFlags(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = config or fresh)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print cards as JSON")
	cmd.Flags().StringVar(&overflow, "overflow", "", "policy for more than 52 names: cap, reject")

	return cmd
}

// overflowPolicy parses flag, falling back to the configured policy.
func (c *CLI) overflowPolicy(flag string) (deck.Overflow, error) {
	if flag == "" {
		return c.config().Overflow(), nil
	}
	return deck.ParseOverflow(flag)
}

func writeCardsJSON(w io.Writer, cards []card.Card) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cards)
}

// dealTable renders cards as a table of id, deck code and display name.
func dealTable(cards []card.Card) string {
	rows := make([][]string, len(cards))
	for i, cd := range cards {
		rows[i] = []string{strconv.Itoa(cd.ID), cd.Code(), names.Format(cd.Value)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("ID", "Card", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorAccent)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorText)
		})
	return t.Render()
}
