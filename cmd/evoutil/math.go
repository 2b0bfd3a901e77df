// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-evopedia/mathidx"
)

var mathCommand = &cli.Command{
	Name:      "math",
	Usage:     "Extract a rendered math image",
	ArgsUsage: "HASH",
	Description: `Extract the rendered math formula image with the given
hex-encoded content hash. The image bytes are written to the output
file, or standard output when no output is given.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Usage:   "write the image to `FILE`",
			Aliases: []string{"o"},
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: math HASH", ErrUsage)
		}
		hash := c.Args().Get(0)

		archives, errs := openArchives(c.StringSlice("data-dir"))
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer closeArchives(archives)

		for _, a := range archives {
			b, err := a.MathImage(hash)
			if errors.Is(err, mathidx.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if output := c.String("output"); output != "" {
				//nolint:gosec // output path is user-provided.
				if err := os.WriteFile(output, b, 0o644); err != nil {
					return fmt.Errorf("writing %q: %w", output, err)
				}
				return nil
			}
			if _, err := os.Stdout.Write(b); err != nil {
				return fmt.Errorf("writing image: %w", err)
			}
			return nil
		}

		return fmt.Errorf("%w: math image %q", ErrNotFound, hash)
	},
}
