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
	"context"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/langserver"
)

var tcpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a language server that reports assembler diagnostics",
	Long: `Serve speaks the language server protocol over stdin and stdout, or
over TCP when --tcp is given. Every open document is expanded and
assembled on each change with the same settings as the assembler.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		defer glog.Flush()

		if tcpAddr != "" {
			return langserver.ListenAndServeTCP(ctx, tcpAddr, opts.Assembler, opts.Preproc)
		}

		langserver.ServeStdio(ctx, opts.Assembler, opts.Preproc)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(
		&tcpAddr, "tcp", "",
		"Listen on this TCP address instead of stdio, e.g. "+langserver.DEFAULT_TCP_ADDR,
	)

	rootCmd.AddCommand(serveCmd)
}
