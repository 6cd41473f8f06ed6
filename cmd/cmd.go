// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand starts the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the catalog API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides server.host and server.port)",
			},
			&cli.BoolFlag{
				Name:  "no-enrich",
				Usage: "Skip the background cover-art passes",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Do not read or write the cover cache",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the cover cache database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// enrichCommand runs a cover-art pass in the foreground.
func enrichCommand(r *Runner) *cli.Command {
	noCache := func() cli.Flag {
		return &cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Do not read or write the cover cache",
		}
	}
	output := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the enriched records as JSON to this file",
		}
	}

	return &cli.Command{
		Name:  "enrich",
		Usage: "Fetch cover art for the catalog",
		Commands: []*cli.Command{
			{
				Name:   "albums",
				Usage:  "Fetch album covers from the music catalog",
				Flags:  []cli.Flag{noCache(), output()},
				Action: r.EnrichAlbums,
			},
			{
				Name:   "movies",
				Usage:  "Fetch movie posters from the film metadata API",
				Flags:  []cli.Flag{noCache(), output()},
				Action: r.EnrichMovies,
			},
		},
	}
}

// moviesCommand inspects the categorized movie list.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "movies",
		Usage: "Inspect the categorized movie list",
		Commands: []*cli.Command{
			{
				Name:  "buckets",
				Usage: "Show how many movies fall in each category",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "List the titles of one category",
					},
				},
				Action: r.MovieBuckets,
			},
		},
	}
}

// exportCommand writes catalog lists to files.
func exportCommand(r *Runner) *cli.Command {
	common := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown or json",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		}
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Export catalog lists",
		Commands: []*cli.Command{
			{
				Name:  "albums",
				Usage: "Export albums",
				Flags: append(common(), &cli.StringFlag{
					Name:  "genre",
					Usage: "Only albums of this genre (favorites selects favorites)",
				}),
				Action: r.ExportAlbums,
			},
			{
				Name:  "movies",
				Usage: "Export movies",
				Flags: append(common(), &cli.StringFlag{
					Name:  "category",
					Usage: "Only movies of this category",
				}),
				Action: r.ExportMovies,
			},
		},
	}
}

// cacheCommand inspects the cover cache.
func cacheCommand(r *Runner) *cli.Command {
	kind := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "kind",
			Usage: "album or movie (default: both)",
		}
	}

	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and clear the cover cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Count cached covers",
				Action: r.CacheStats,
			},
			{
				Name:  "list",
				Usage: "List cached covers",
				Flags: []cli.Flag{
					kind(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:   "clear",
				Usage:  "Remove cached covers",
				Flags:  []cli.Flag{kind()},
				Action: r.CacheClear,
			},
		},
	}
}
