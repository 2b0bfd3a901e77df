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

var randomCommand = &cli.Command{
	Name:        "random",
	Usage:       "Print a random article title",
	Description: `Print a random article title from each archive.`,
	Action: func(c *cli.Context) error {
		archives, errs := openArchives(c.StringSlice("data-dir"))
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer closeArchives(archives)

		for _, a := range archives {
			title, err := a.RandomTitle()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Fprintf(c.App.Writer, "%s (%s): %s\n", a.Language(), a.Date(), title.Name)
		}

		if len(errs) > 0 {
			return fmt.Errorf("%w: some archives could not be opened", ErrEvoutil)
		}
		return nil
	},
}
