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

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"
)

var readCommand = &cli.Command{
	Name:      "read",
	Usage:     "Read an article",
	ArgsUsage: "NAME",
	Description: `Read the article with the given title. Archives are
searched in order and the first match is printed. Article bodies are
HTML and are rendered as plain text unless --html is given.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "html",
			Usage: "print the raw article HTML",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: read NAME", ErrUsage)
		}
		name := c.Args().Get(0)

		archives, errs := openArchives(c.StringSlice("data-dir"))
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer closeArchives(archives)

		for _, a := range archives {
			if !a.IsReady() {
				continue
			}
			title, err := a.TitleByName(name)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			if title == nil {
				continue
			}

			article, err := a.Article(title)
			if err != nil {
				return err
			}
			if !c.Bool("html") {
				article = html2text.HTML2Text(article)
			}
			fmt.Fprintln(c.App.Writer, article)
			return nil
		}

		return fmt.Errorf("%w: article %q", ErrNotFound, name)
	},
}
