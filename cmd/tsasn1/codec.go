// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tsasn1/internal/archive"
	ver "github.com/pdiddy/tsasn1/internal/version"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <version>",
	Short: "Encode a dotted version as its 3-character archive token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := ver.Encode(args[0])
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a 3-character archive token as a dotted version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := ver.Decode(args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <spec> <version>",
	Short: "Print the archive path of a specification release",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := archivePath(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

// archivePath encodes version and joins it into the archive path of spec.
func archivePath(spec, version string) (string, error) {
	number, err := archive.Normalize(spec)
	if err != nil {
		return "", err
	}
	token, err := ver.Encode(version)
	if err != nil {
		return "", err
	}
	return archive.Path(number, token), nil
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(pathCmd)
}
