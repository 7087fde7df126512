package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kralicky/twic/decode"
	"github.com/kralicky/twic/encode"
)

var getFile string

var getCmd = &cobra.Command{
	Use:   "get [file] <path>",
	Short: "Decode a Twic document and print the value at a path expression",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, pathExpr := "", args[0]
		if len(args) == 2 {
			name, pathExpr = args[0], args[1]
		}
		src, err := readInput(name)
		if err != nil {
			return fmt.Errorf("twicfmt: reading input: %w", err)
		}

		val, err := decode.Decode(src)
		if err != nil {
			var de *decode.DecodeError
			if asDecodeError(err, &de) {
				line, col := lineCol(src, de.Offset)
				return fmt.Errorf("twicfmt: %d:%d: %v", line, col, de.Err)
			}
			return fmt.Errorf("twicfmt: %w", err)
		}

		path, err := parsePath(pathExpr)
		if err != nil {
			return fmt.Errorf("twicfmt: invalid path %q: %w", pathExpr, err)
		}

		logrus.WithField("path", path.String()).Debug("navigating")
		sub, err := val.At(path)
		if err != nil {
			return fmt.Errorf("twicfmt: %v", err)
		}

		fmt.Println(encode.EncodeString(sub))
		return nil
	},
}
