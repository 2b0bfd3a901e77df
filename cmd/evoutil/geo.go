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
	"strconv"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-evopedia/geo"
)

var geoCommand = &cli.Command{
	Name:      "geo",
	Usage:     "Search articles by location",
	ArgsUsage: "LON LAT WIDTH HEIGHT",
	Description: `Search all archives for articles whose coordinates lie
within the given rectangle. Results are sorted by distance to the
rectangle's center.`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "max",
			Usage:   "maximum titles per archive",
			Aliases: []string{"n"},
			Value:   50,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 4 {
			return fmt.Errorf("%w: geo LON LAT WIDTH HEIGHT", ErrUsage)
		}
		var coords [4]float64
		for i := range coords {
			v, err := strconv.ParseFloat(c.Args().Get(i), 64)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			coords[i] = v
		}
		rect := geo.NewRect(coords[0], coords[1], coords[2], coords[3])

		archives, errs := openArchives(c.StringSlice("data-dir"))
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer closeArchives(archives)

		tbl := table.New("TITLE", "LON", "LAT", "LANGUAGE")
		tbl.WithWriter(c.App.Writer)
		for _, a := range archives {
			titles, err := a.TitlesInRect(c.Context, rect, c.Int("max"))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			for _, t := range titles {
				tbl.AddRow(t.Name, t.Location.Lon, t.Location.Lat, a.Language())
			}
		}
		tbl.Print()

		if len(errs) > 0 {
			return fmt.Errorf("%w: some archives could not be opened", ErrEvoutil)
		}
		return nil
	},
}
