package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/oasbuild/oasgen/internal/console"
	"github.com/oasbuild/oasgen/internal/gen"
	"github.com/oasbuild/oasgen/internal/source"
)

const (
	manifestFlag             = "manifest"
	searchDirFlag            = "dir"
	excludeFlag              = "exclude"
	propertyStrategyFlag     = "propertyStrategy"
	outputFlag               = "output"
	outputTypesFlag          = "outputTypes"
	parseVendorFlag          = "parseVendor"
	parseDependencyFlag      = "parseDependency"
	parseDependencyLevelFlag = "parseDependencyLevel"
	parseInternalFlag        = "parseInternal"
	parseExtensionFlag       = "parseExtension"
	parseGoPackagesFlag      = "parseGoPackages"
	packagePrefixFlag        = "packagePrefix"
	instanceNameFlag         = "instanceName"
	packageNameFlag          = "packageName"
	concurrencyFlag          = "concurrency"
	generatedTimeFlag        = "generatedTime"
	validateFlag             = "validate"
	quietFlag                = "quiet"
	debugFlag                = "debug"
)

var initFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    manifestFlag,
		Aliases: []string{"m"},
		Value:   "oasgen.yaml",
		Usage:   "Route manifest describing the API surface (info, servers, routes)",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories to scan for type declarations, comma separated",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories and files when searching, comma separated; glob patterns allowed",
	},
	&cli.StringFlag{
		Name:    propertyStrategyFlag,
		Aliases: []string{"p"},
		Value:   source.CamelCase,
		Usage:   "Property Naming Strategy like " + source.SnakeCase + "," + source.CamelCase + "," + source.PascalCase,
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files (docs.go, openapi.json, openapi.yaml)",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "go,json,yaml",
		Usage:   "Output types of generated files like go,json,yaml",
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Parse go files in 'vendor' folder, disabled by default",
	},
	&cli.IntFlag{
		Name:    parseDependencyLevelFlag,
		Aliases: []string{"pdl"},
		Usage:   "Parse go files inside dependency folder, 0 disabled, 1 only parse models, 2 only parse operations, 3 parse all",
	},
	&cli.BoolFlag{
		Name:    parseDependencyFlag,
		Aliases: []string{"pd"},
		Usage:   "Parse go files inside dependency folder, disabled by default",
	},
	&cli.BoolFlag{
		Name:  parseInternalFlag,
		Usage: "Parse go files in internal packages, disabled by default",
	},
	&cli.StringFlag{
		Name:  parseExtensionFlag,
		Value: "",
		Usage: "Parse only files matching the given extension",
	},
	&cli.BoolFlag{
		Name:  parseGoPackagesFlag,
		Usage: "Discover Go sources by golang.org/x/tools/go/packages, disabled by default",
	},
	&cli.StringFlag{
		Name:  packagePrefixFlag,
		Value: "",
		Usage: "Parse only packages whose import path match the given prefix, comma separated",
	},
	&cli.StringFlag{
		Name:  instanceNameFlag,
		Value: "",
		Usage: "This parameter can be used to name different document instances. It is optional.",
	},
	&cli.StringFlag{
		Name:  packageNameFlag,
		Value: "",
		Usage: "Package name of the generated docs.go, defaults to the output directory name",
	},
	&cli.IntFlag{
		Name:  concurrencyFlag,
		Usage: "Number of files parsed concurrently, defaults to the CPU count",
	},
	&cli.BoolFlag{
		Name:  generatedTimeFlag,
		Usage: "Generate timestamp at the top of docs.go, disabled by default",
	},
	&cli.BoolFlag{
		Name:  validateFlag,
		Usage: "Re-parse and validate the generated document before writing, disabled by default",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

func initAction(ctx *cli.Context) error {
	strategy := ctx.String(propertyStrategyFlag)

	switch strategy {
	case source.CamelCase, source.SnakeCase, source.PascalCase:
	default:
		return fmt.Errorf("not supported %s propertyStrategy", strategy)
	}

	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}

	outputTypes := strings.Split(ctx.String(outputTypesFlag), ",")
	if len(outputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}

	pdv := ctx.Int(parseDependencyLevelFlag)
	if pdv == 0 {
		if ctx.Bool(parseDependencyFlag) {
			pdv = 1
		}
	}

	return gen.New().Build(&gen.Config{
		ManifestFile:       ctx.String(manifestFlag),
		SearchDir:          ctx.String(searchDirFlag),
		Excludes:           ctx.String(excludeFlag),
		ParseExtension:     ctx.String(parseExtensionFlag),
		PropNamingStrategy: strategy,
		OutputDir:          ctx.String(outputFlag),
		OutputTypes:        outputTypes,
		ParseVendor:        ctx.Bool(parseVendorFlag),
		ParseDependency:    pdv,
		ParseInternal:      ctx.Bool(parseInternalFlag),
		ParseGoPackages:    ctx.Bool(parseGoPackagesFlag),
		PackagePrefix:      ctx.String(packagePrefixFlag),
		InstanceName:       ctx.String(instanceNameFlag),
		PackageName:        ctx.String(packageNameFlag),
		Concurrency:        ctx.Int(concurrencyFlag),
		GeneratedTime:      ctx.Bool(generatedTimeFlag),
		Validate:           ctx.Bool(validateFlag),
		Quiet:              ctx.Bool(quietFlag),
		Debug:              ctx.Bool(debugFlag),
	})
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Automatically generate OpenAPI 3.0 documentation from a route manifest and Go type declarations."
	app.Commands = []*cli.Command{
		{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Generate OpenAPI documentation",
			Action:  initAction,
			Flags:   initFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
