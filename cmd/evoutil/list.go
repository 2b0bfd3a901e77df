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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List archives",
	Description: `List all archives found in the data directories.
Archives are directories containing a titles.idx file.`,
	Action: func(c *cli.Context) error {
		archives, errs := openArchives(c.StringSlice("data-dir"))
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer closeArchives(archives)

		tbl := table.New("LANGUAGE", "DATE", "DATA", "COORD", "NORMALIZED", "PATH")
		tbl.WithWriter(c.App.Writer)
		for _, a := range archives {
			tbl.AddRow(
				a.Language(),
				a.Date(),
				a.DataShardCount(),
				a.CoordShardCount(),
				a.NormalizedTitles(),
				a.Path(),
			)
		}
		tbl.Print()

		if len(errs) > 0 {
			return fmt.Errorf("%w: some archives could not be opened", ErrEvoutil)
		}
		return nil
	},
}
