package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ghetzel/cli"
	"github.com/ghetzel/formulas"
	"github.com/ghetzel/formulas/util"
	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/go-stockutil/maputil"
	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/ghetzel/go-stockutil/typeutil"
	yaml "gopkg.in/yaml.v2"
)

func main() {
	app := cli.NewApp()
	app.Name = util.ApplicationName
	app.Usage = util.ApplicationSummary
	app.Version = util.ApplicationVersion
	app.ArgsUsage = `EXPRESSION [EXPRESSION ...]`
	app.Commands = util.Register()

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   `log-level, L`,
			Usage:  `Level of log output verbosity`,
			Value:  `info`,
			EnvVar: `LOGLEVEL`,
		},
		cli.StringFlag{
			Name:   `config, c`,
			Usage:  `The name of the configuration file to load (if present)`,
			Value:  formulas.DefaultConfigFile,
			EnvVar: `FORMULAS_CONFIG`,
		},
		cli.StringFlag{
			Name:  `data-file, d`,
			Usage: `A YAML or JSON file containing the record expressions are evaluated against.`,
		},
		cli.StringSliceFlag{
			Name:  `set, s`,
			Usage: `A key=value pair that will be inserted into the record, overriding any prior values.`,
		},
		cli.BoolFlag{
			Name:  `help-functions`,
			Usage: `Generate documentation on all supported functions.`,
		},
		cli.StringFlag{
			Name:  `list, l`,
			Usage: `List the names of all functions matching the given shell pattern, then exit.`,
		},
	}

	app.Before = func(c *cli.Context) error {
		log.SetLevelString(c.String(`log-level`))

		return nil
	}

	app.Action = func(c *cli.Context) {
		var config formulas.Config

		if filename := c.String(`config`); filename != `` {
			if _, err := os.Stat(filename); err == nil {
				if cfg, err := formulas.LoadConfigFile(filename); err == nil {
					config = cfg
				} else {
					log.Fatalf("config error: %v", err)
				}
			} else if c.IsSet(`config`) {
				log.Fatalf("config error: %v", err)
			}
		}

		resolver, err := config.Resolver()

		if err != nil {
			log.Fatalf("config error: %v", err)
		}

		if c.Bool(`help-functions`) {
			var defs = resolver.Catalog().Groups()

			for _, group := range defs {
				for _, fn := range group.Functions {
					if fn.Summary == `` {
						log.Warningf("%v: undocumented function", fn.Name)
					} else if len(fn.Examples) == 0 {
						log.Noticef("%v: no examples", fn.Name)
					}
				}
			}

			if data, err := json.MarshalIndent(&defs, ``, `  `); err == nil {
				os.Stdout.Write(data)
				return
			} else {
				log.Fatal(err)
			}
		}

		if pattern := c.String(`list`); pattern != `` {
			if names, err := resolver.Catalog().Match(pattern); err == nil {
				fmt.Println(strings.Join(names, "\n"))
				return
			} else {
				log.Fatal(err)
			}
		}

		var record = loadRecord(c.String(`data-file`))

		for _, pair := range c.StringSlice(`set`) {
			key, value := stringutil.SplitPair(pair, `=`)
			record.Set(key, stringutil.Autotype(value))
		}

		for _, expr := range c.Args() {
			if out, err := formulas.Eval(resolver, expr, record.MapNative()); err == nil {
				fmt.Println(out)
			} else {
				log.Fatalf("%s: %v", expr, err)
			}
		}
	}

	app.Run(os.Args)
}

func loadRecord(filename string) *maputil.Map {
	var record = maputil.M(nil)

	if filename == `` {
		return record
	}

	if data, err := os.ReadFile(filename); err == nil {
		var parsed interface{}

		// YAML is a superset of JSON, so this handles both.
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			log.Fatalf("bad data-file: %v", err)
		}

		log.Debugf("parsing data-file: path=%s", filename)

		if typeutil.IsMap(parsed) {
			for k, v := range typeutil.MapNative(parsed) {
				record.Set(k, v)
			}
		} else {
			log.Fatalf("bad data-file: expected an object, got %T", parsed)
		}
	} else {
		log.Fatalf("bad data-file: %v", err)
	}

	return record
}
