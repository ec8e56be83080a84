package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	nio "github.com/matzehuels/nameplate/pkg/io"
	"github.com/matzehuels/nameplate/pkg/names"
)

// namesInput is the name source shared by deal, layout, board and serve.
type namesInput struct {
	file   string
	dedupe bool
}

func (in *namesInput) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "read names from a file (- for stdin)")
	cmd.Flags().BoolVar(&in.dedupe, "dedupe", false, "drop repeated names")
}

// read collects names from args and the --file source, tokenizes them
// and validates the result.
func (in *namesInput) read(args []string, stdin io.Reader) ([]string, error) {
	list := names.Tokenize(strings.Join(args, " "))

	if in.file != "" {
		r := stdin
		if in.file != "-" {
			f, err := os.Open(in.file)
			if err != nil {
				return nil, fmt.Errorf("open names file: %w", err)
			}
			defer f.Close()
			r = f
		}
		more, err := nio.ReadNames(r)
		if err != nil {
			return nil, fmt.Errorf("read names: %w", err)
		}
		list = append(list, more...)
	}

	if in.dedupe {
		list = names.Dedupe(list)
	}
	if err := names.Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}
