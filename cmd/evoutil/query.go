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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Search titles by prefix",
	ArgsUsage: "PREFIX",
	Description: `Search all archives for article titles starting with
the given prefix. The prefix is normalized the same way the archive's
titles are.`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "max",
			Usage:   "maximum titles per archive",
			Aliases: []string{"n"},
			Value:   10,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: query PREFIX", ErrUsage)
		}
		prefix := c.Args().Get(0)

		archives, errs := openArchives(c.StringSlice("data-dir"))
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer closeArchives(archives)

		for _, a := range archives {
			titles, err := a.TitlesWithPrefix(prefix, c.Int("max"))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			if len(titles) == 0 {
				continue
			}

			fmt.Fprintf(c.App.Writer, "%s (%s)\n", a.Language(), a.Date())
			for _, t := range titles {
				fmt.Fprintf(c.App.Writer, "  %s\n", t.Name)
			}
			fmt.Fprintln(c.App.Writer)
		}

		if len(errs) > 0 {
			return fmt.Errorf("%w: some archives could not be opened", ErrEvoutil)
		}
		return nil
	},
}
