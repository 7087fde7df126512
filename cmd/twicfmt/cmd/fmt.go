package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kralicky/twic/decode"
	"github.com/kralicky/twic/encode"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Decode a Twic document and re-encode it canonically",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		src, err := readInput(name)
		if err != nil {
			return fmt.Errorf("twicfmt: reading input: %w", err)
		}
		logrus.WithField("bytes", len(src)).Debug("decoding document")

		val, err := decode.Decode(src)
		if err != nil {
			var de *decode.DecodeError
			if asDecodeError(err, &de) {
				line, col := lineCol(src, de.Offset)
				return fmt.Errorf("twicfmt: %d:%d: %v", line, col, de.Err)
			}
			return fmt.Errorf("twicfmt: %w", err)
		}

		fmt.Println(encode.EncodeString(val))
		return nil
	},
}

func asDecodeError(err error, target **decode.DecodeError) bool {
	de, ok := err.(*decode.DecodeError)
	if !ok {
		return false
	}
	*target = de
	return true
}
