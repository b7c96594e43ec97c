package util

import (
	"fmt"

	"github.com/ghetzel/cli"
)

const ApplicationName = `formulas`
const ApplicationSummary = `evaluate spreadsheet-style formulas against data records`
const ApplicationVersion = `0.3.0`

func Register() []cli.Command {
	return []cli.Command{
		{
			Name:  "version",
			Usage: "Output only the version string and exit",
			Action: func(c *cli.Context) {
				fmt.Println(ApplicationVersion)
			},
		},
	}
}
