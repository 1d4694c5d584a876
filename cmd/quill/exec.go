package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacentio/quill/gateway"
)

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

func newExecCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [file]",
		Short: "Serve JSON-lines requests from a file or stdin",
		Long: `Reads one request per line, for example

  {"op":"createUser","args":{"name":"Andrew","email":"andrew@example.com"}}
  {"op":"posts","args":{"query":"first"},"select":["author","comments.author"]}

and writes one response per line to stdout. A failed request produces an
error response; the stream continues.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			h, err := opts.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			return serveLines(cmd, h, in, cmd.OutOrStdout())
		},
	}
}

func serveLines(cmd *cobra.Command, h *gateway.Handler, in io.Reader, out io.Writer) error {
	r := bufio.NewReaderSize(in, 64*1024)
	enc := json.NewEncoder(out)

	for {
		raw, tooLong, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read requests: %w", err)
		}
		line := bytes.TrimSpace(raw)
		if len(line) == 0 && !tooLong {
			continue
		}

		var resp gateway.Response
		if tooLong {
			resp = invalidRequest(fmt.Sprintf("request exceeds %d bytes", maxRequestBytes))
		} else {
			var req gateway.Request
			if err := json.Unmarshal(line, &req); err != nil {
				resp = invalidRequest(fmt.Sprintf("decode request: %v", err))
			} else {
				resp = h.Handle(cmd.Context(), req)
			}
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// readLine returns the next line without its line ending. A line longer than
// maxRequestBytes is read to its end and dropped, with tooLong set.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > maxRequestBytes {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

func invalidRequest(msg string) gateway.Response {
	return gateway.Response{Error: &gateway.Error{Kind: gateway.KindInvalidArgument, Message: msg}}
}
