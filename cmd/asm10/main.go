// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/encoding"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

type options struct {
	Assembler    assembler.Config
	Preproc      preproc.Config
	Format       encoding.Format
	FormatName   string
	OutDir       string
	KeepExpanded bool
	Dump         bool
}

var opts = options{
	Assembler: assembler.DefaultConfig(),
	Preproc:   preproc.DefaultConfig(),
}

var styled bool

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	styled = isTerminal(os.Stderr.Fd())
}

var rootCmd = &cobra.Command{
	Use:   "asm10 [flags] file...",
	Short: "Two-pass assembler for the 10-bit word machine",
	Long: `Asm10 assembles each source file independently. A file named without
an extension is read from <name>.as. Macros defined with .define are
expanded into <name>.am first, then the expanded source is assembled
into <name>.ob, plus <name>.ent and <name>.ext when the source exports
or imports symbols. No output is written for a file with errors.

The exit status is 1 if any file failed.`,

	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its flags from the standard flag set.
		flag.CommandLine.Parse(nil)

		format, err := encoding.ParseFormat(opts.FormatName)

		if err != nil {
			return err
		}

		opts.Format = format
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0

		for _, arg := range args {
			if !assembleFile(arg, &opts) {
				failed++
			}
		}

		glog.Flush()

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}

		return nil
	},
}

func init() {
	flag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	config := &opts.Assembler
	persistent := rootCmd.PersistentFlags()

	persistent.IntVar(
		&config.LogicalBase, "base", config.LogicalBase,
		"Address of the first code word",
	)
	persistent.IntVar(
		&config.MaxAddress, "max-address", config.MaxAddress,
		"Highest addressable word, 0 for no limit",
	)
	persistent.IntVar(
		&config.MaxLineLength, "max-line", config.MaxLineLength,
		"Longest accepted source line, 0 for no limit",
	)
	persistent.BoolVar(
		&config.StrictMatrix, "strict-mat", false,
		"Reject .mat directives with more initializers than cells",
	)
	persistent.IntVar(
		&opts.Preproc.MaxMacros, "max-macros", opts.Preproc.MaxMacros,
		"Most .define macros accepted per file, 0 for no limit",
	)

	flags := rootCmd.Flags()

	flags.StringVar(
		&opts.FormatName, "format", "decimal",
		"Word encoding of the output files: decimal or base4",
	)
	flags.StringVarP(
		&opts.OutDir, "outdir", "o", "",
		"Directory for the output files, defaulting to the source directory",
	)
	flags.BoolVar(
		&opts.KeepExpanded, "keep-expanded", false,
		"Keep the macro expanded .am file after assembly",
	)
	flags.BoolVar(
		&opts.Dump, "dump", false,
		"Print the symbol table, fixups and external uses of each file",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.SetPrefix("")
		log.Println(err)
		os.Exit(1)
	}
}
