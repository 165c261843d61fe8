package main

import (
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hpcd-dev/hpc/batch"
	"github.com/hpcd-dev/hpc/bundle"
	enc "github.com/hpcd-dev/hpc/encoding"
	"github.com/hpcd-dev/hpc/gen"
	"github.com/hpcd-dev/hpc/headercheck"
	"github.com/hpcd-dev/hpc/report"
	"os"
	"path"
	"runtime"
	"time"
)

// version is set by `go build`
var version = "<version>"

// CLI commands (see https://github.com/alecthomas/kong)
var CLI struct {
	Debug int `short:"v" type:"counter" help:"Enable debug mode (-v for DebugLow, -vv for DebugHigh)."`

	Version struct {
	} `cmd help:"Show the program version."`

	Generate struct {
		FileCount int    `env:"FILE_COUNT" default:"10"  help:"Number of data files to create."`
		FileMB    int    `env:"FILE_MB" default:"10"  help:"Size of each data file in megabytes."`
		Force     bool   `short:"f" env:"FORCE"  help:"Deletes and regenerates existing data files."`
		DataDir   string `env:"DATA_DIR" default:"data"  help:"Target directory for the data files."`
		Seed      int64  `env:"SEED"  help:"Seed for the random source (0 = time based)."`
	} `cmd help:"Generate random binary test data files."`

	Hash struct {
		ExpectedCount int    `env:"EXPECTED_COUNT" default:"10"  help:"Required number of data files."`
		HashDelaySecs int    `env:"HASH_DELAY_SECS" default:"3"  help:"Pacing delay in seconds after each file."`
		DataDir       string `env:"DATA_DIR" default:"data"  help:"Directory with the data files."`
		ResultsDir    string `env:"RESULTS_DIR" default:"results"  help:"Target directory for summary and manifest."`
	} `cmd help:"Hash the data file set and write a digest manifest and a summary report."`

	Verify struct {
		Manifest string `arg type:"existingfile"  help:"Path to the digest manifest (hashes.sha256)."`
	} `cmd help:"Recompute all digests and compare them with a manifest."`

	Keygen struct {
		KeyFile string `arg type:"path"  help:"Path to the key file (must not exist)."`
	} `cmd help:"Creates a new key file (used for bundle encryption)."`

	Pack struct {
		KeyFile string `short:"k" type:"existingfile"  help:"Encrypt the bundle with this key file."`
		DataDir string `env:"DATA_DIR" default:"data"  help:"Directory with the data files."`
		//-----------------
		BundleFile string `arg type:"path"  help:"Path to the new bundle file (must not exist)."`
	} `cmd help:"Pack the data file set into a single compressed bundle."`

	Unpack struct {
		KeyFile string `short:"k" type:"existingfile"  help:"Decrypt the bundle with this key file."`
		//-----------------
		BundleFile string `arg type:"existingfile"  help:"Path to the bundle file."`
		OutDir     string `arg type:"path"  help:"Target directory for the restored data files."`
	} `cmd help:"Restore the data files from a bundle."`

	Checkheaders struct {
		Exts          []string `default:".go,.sh"  help:"Checked file extensions."`
		SkipDirs      []string `default:".git,vendor,data,results"  help:"Directory names excluded from the scan."`
		LicenseLine   string   `default:"SPDX-License-Identifier:"  help:"Required license identifier text."`
		CopyrightLine string   `default:"Copyright"  help:"Required copyright text."`
		//-----------------
		Root string `arg type:"existingdir"  help:"Repository root to scan."`
	} `cmd help:"Check that all source files carry the required license header."`
}

func main() {
	description := "The program generates random test data, verifies it with digest manifests and checks source file headers."
	ctx := kong.Parse(&CLI, kong.UsageOnError(), kong.Description(description))
	debug := uint8(CLI.Debug)

	switch ctx.Selected().Name {

	case "version":
		fmt.Printf("%s %s\n", path.Base(os.Args[0]), version)
		fmt.Printf("%s %s/%s (%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.Compiler)

	case "generate":
		a := CLI.Generate
		if debug >= report.DebugLow {
			report.PrintMemStats()
		}
		total, err := gen.Generate(gen.Config{
			Dir:    a.DataDir,
			Count:  a.FileCount,
			SizeMB: a.FileMB,
			Force:  a.Force,
			Seed:   a.Seed,
		}, debug)
		ctx.FatalIfErrorf(err)
		fmt.Printf("Generated %d files (~%d bytes) in %s\n", a.FileCount, total, a.DataDir)

	case "hash":
		a := CLI.Hash
		if debug >= report.DebugLow {
			report.PrintMemStats()
		}
		err := batch.Run(batch.Config{
			DataDir:       a.DataDir,
			ResultsDir:    a.ResultsDir,
			ExpectedCount: a.ExpectedCount,
			Delay:         time.Duration(a.HashDelaySecs) * time.Second,
		}, debug)
		ctx.FatalIfErrorf(err)

	case "verify":
		err := batch.Verify(CLI.Verify.Manifest, debug)
		ctx.FatalIfErrorf(err)

	case "keygen":
		err := enc.CreateKeyFile(CLI.Keygen.KeyFile)
		ctx.FatalIfErrorf(err)

	case "pack":
		a := CLI.Pack
		keyFile, err := loadOptionalKey(a.KeyFile)
		ctx.FatalIfErrorf(err)
		err = bundle.Pack(a.DataDir, a.BundleFile, keyFile, debug)
		ctx.FatalIfErrorf(err)

	case "unpack":
		a := CLI.Unpack
		keyFile, err := loadOptionalKey(a.KeyFile)
		ctx.FatalIfErrorf(err)
		err = bundle.Unpack(a.BundleFile, a.OutDir, keyFile, debug)
		ctx.FatalIfErrorf(err)

	case "checkheaders":
		a := CLI.Checkheaders
		violations, err := headercheck.Check(headercheck.Config{
			Root:          a.Root,
			Exts:          a.Exts,
			SkipDirs:      a.SkipDirs,
			LicenseLine:   a.LicenseLine,
			CopyrightLine: a.CopyrightLine,
		}, debug)
		ctx.FatalIfErrorf(err)
		if len(violations) > 0 {
			for _, relPath := range violations {
				_, _ = fmt.Fprintln(os.Stderr, relPath)
			}
			ctx.FatalIfErrorf(fmt.Errorf("%d files without the required header ('%s' and '%s' in the first %d lines)",
				len(violations), a.LicenseLine, a.CopyrightLine, headercheck.HeadLines))
		}

	default:
		panic(fmt.Sprintf("command not implemented: '%s'", ctx.Command()))
	}
}

// ----------  HELPER  -----------------------------------------------------------------------------------------------//

// loadOptionalKey loads the key file if a path is given.
func loadOptionalKey(path string) (*enc.KeyFile, error) {
	if path == "" {
		return nil, nil
	}
	return enc.LoadKeyFile(path)
}
