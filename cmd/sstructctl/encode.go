// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/acolinisi/hypre/array/wire"
	"github.com/acolinisi/hypre/glvis"
)

type encodeFlags struct {
	codec    string
	out      string
	field    string
	variable int
}

func newEncodeCmd(a *app) *cobra.Command {
	f := encodeFlags{}
	cmd := &cobra.Command{
		Use:   "encode CONFIG",
		Short: "Write the sample values of one variable as framed views",
		Long: `Fills every box of the chosen variable with a sample field and writes one
length-prefixed frame per box, parts in order, in the chosen codec.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = g.Destroy() }()
			codec, err := wire.ByName[float64](f.codec)
			if err != nil {
				return err
			}
			values, err := sampleValues(g.Topology(), f.variable, f.field)
			if err != nil {
				return err
			}
			defer releaseAll(values)

			return withOutput(cmd, f.out, func(w io.Writer) error {
				for _, row := range values {
					for _, v := range row {
						if err := wire.Encode(w, codec, v); err != nil {
							return err
						}
					}
				}

				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&f.codec, "codec", "c", wire.NameProto, `codec: "proto" or "cbor"`)
	cmd.Flags().StringVarP(&f.out, "output", "o", "-", `output file ("-" is stdout)`)
	cmd.Flags().StringVar(&f.field, "field", fieldIndex, `sample field: "index" or "part"`)
	cmd.Flags().IntVar(&f.variable, "var", 0, "variable number")

	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var codecName string
	var maxFrame int
	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Print the framed views in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := wire.ByName[float64](codecName)
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			n, err := printFrames(cmd.OutOrStdout(), bufio.NewReader(file), codec, maxFrame)
			a.logger.Debug("decoded frames", "file", args[0], "frames", n)

			return err
		},
	}
	cmd.Flags().StringVarP(&codecName, "codec", "c", wire.NameProto, `codec: "proto" or "cbor"`)
	cmd.Flags().IntVar(&maxFrame, "max-frame", wire.DefaultMaxFrameSize, "largest accepted frame in bytes")

	return cmd
}

// printFrames decodes frames until EOF, printing one view per line.
func printFrames(w io.Writer, r *bufio.Reader, codec wire.Codec[float64], maxFrame int) (int, error) {
	for n := 0; ; n++ {
		v, err := wire.Decode(r, codec, maxFrame)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("frame %d: %w", n, err)
		}
		fmt.Fprintln(w, v)
		if err = v.Release(); err != nil {
			return n, err
		}
	}
}

// withOutput runs write against path, or the command's stdout for "-".
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		bw := bufio.NewWriter(cmd.OutOrStdout())
		if err := write(bw); err != nil {
			return err
		}

		return bw.Flush()
	}

	return glvis.WriteFile(path, write)
}
