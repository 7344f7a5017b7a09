package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/xps/internal/dump"
	"github.com/dshills/xps/internal/engine/xps"
)

func (a *app) encodeCmd() *cobra.Command {
	var asHex bool

	cmd := &cobra.Command{
		Use:   "encode [TEXT]",
		Short: "Write the chunked encoding of TEXT or of each input line",
		Long: `Encode TEXT, or each line of standard input without its newline, in the
chunked wire format. Encodings are written back to back; with --hex each
one is written as a line of hex digits instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			enc := xps.NewEncoder(out)
			write := func(text []byte) error {
				if !asHex {
					return enc.EncodeBytes(text)
				}
				_, err := fmt.Fprintln(out, hex.EncodeToString(xps.Encode(text)))
				return err
			}

			if len(args) == 1 {
				if err := write([]byte(args[0])); err != nil {
					return err
				}
				return out.Flush()
			}

			in := bufio.NewReader(cmd.InOrStdin())
			n := 0
			for {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				line, readErr := in.ReadBytes('\n')
				if len(line) > 0 {
					if err := write(bytes.TrimSuffix(line, []byte{'\n'})); err != nil {
						return err
					}
					n++
				}
				if errors.Is(readErr, io.EOF) {
					break
				}
				if readErr != nil {
					return fmt.Errorf("reading input: %w", readErr)
				}
			}
			a.logger.Debug("encoded", zap.Int("strings", n))
			return out.Flush()
		},
	}

	cmd.Flags().BoolVar(&asHex, "hex", false, "write each encoding as a line of hex")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	var fromHex bool

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a stream of chunked strings into lines",
		Long: `Read chunked strings from standard input and write each one as a line.
With --hex the input is hex digits (whitespace ignored).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if fromHex {
				raw, err := readHex(in)
				if err != nil {
					return err
				}
				in = bytes.NewReader(raw)
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			dec := xps.NewDecoder(bufio.NewReader(in))
			n := 0
			for {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				s, err := dec.Decode()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("string %d: %w", n+1, err)
				}
				if _, err := out.Write(s.AppendTo(nil)); err != nil {
					return err
				}
				if err := out.WriteByte('\n'); err != nil {
					return err
				}
				n++
			}
			a.logger.Debug("decoded", zap.Int("strings", n), zap.Int("bytes", dec.Offset()))
			return out.Flush()
		},
	}

	cmd.Flags().BoolVar(&fromHex, "hex", false, "read hex digits instead of raw bytes")
	return cmd
}

func (a *app) dumpCmd() *cobra.Command {
	var fromHex, raw, compact bool

	cmd := &cobra.Command{
		Use:   "dump [TEXT]",
		Short: "Describe the chunk layout as JSON",
		Long: `Describe how TEXT is laid out in chunks. Without TEXT, describe the
encoded buffer read from standard input (--hex for hex digits), or with
--raw encode the input as text first.

Output is indented and colored when written to a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc []byte
			var err error

			switch {
			case len(args) == 1:
				doc, err = dump.Describe([]byte(args[0]))
			default:
				var in []byte
				if fromHex {
					in, err = readHex(cmd.InOrStdin())
				} else {
					in, err = io.ReadAll(cmd.InOrStdin())
				}
				if err != nil {
					return err
				}
				if raw {
					doc, err = dump.Describe(in)
				} else {
					doc, err = dump.DescribeChunked(xps.Chunked(in))
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case compact:
				doc = append(doc, '\n')
			case isTerminal(out):
				doc = dump.Color(doc)
			default:
				doc = dump.Pretty(doc)
			}
			_, err = out.Write(doc)
			return err
		},
	}

	cmd.Flags().BoolVar(&fromHex, "hex", false, "read hex digits instead of raw bytes")
	cmd.Flags().BoolVar(&raw, "raw", false, "treat input as text to encode")
	cmd.Flags().BoolVar(&compact, "compact", false, "write single-line JSON")
	return cmd
}

// readHex reads hex digits from r, ignoring whitespace.
func readHex(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	digits := bytes.Join(bytes.Fields(data), nil)
	out := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return out, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
