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

package langserver_test

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/langserver"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

type client struct {
	published chan langserver.PublishDiagnosticsParams
}

func (c *client) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
		return
	}

	var params langserver.PublishDiagnosticsParams

	if err := json.Unmarshal(*req.Params, &params); err == nil {
		c.published <- params
	}
}

func connect(t *testing.T) (*jsonrpc2.Conn, *client) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverSide, clientSide := net.Pipe()

	server := langserver.NewServer(assembler.DefaultConfig(), preproc.DefaultConfig())
	go server.Serve(ctx, serverSide)

	handler := &client{make(chan langserver.PublishDiagnosticsParams, 16)}
	conn := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		handler,
	)

	t.Cleanup(func() {
		conn.Close()
		cancel()
	})

	var result langserver.InitializeResult

	if err := conn.Call(ctx, "initialize", map[string]interface{}{}, &result); err != nil {
		t.Fatal(err)
	}

	if result.Capabilities.TextDocumentSync != langserver.SYNC_FULL {
		t.Fatalf("Unexpected capabilities: %+v", result.Capabilities)
	}

	return conn, handler
}

func (c *client) next(t *testing.T) langserver.PublishDiagnosticsParams {
	t.Helper()

	select {
	case params := <-c.published:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for diagnostics")
	}

	return langserver.PublishDiagnosticsParams{}
}

func TestDiagnostics(t *testing.T) {
	conn, handler := connect(t)
	ctx := context.Background()
	uri := langserver.DocumentURI("file:///prog.as")

	err := conn.Notify(ctx, "textDocument/didOpen", langserver.DidOpenTextDocumentParams{
		TextDocument: langserver.TextDocumentItem{
			URI:     uri,
			Version: 1,
			Text:    "jmp NOWHERE\nfoo r1\nL: .extern X",
		},
	})

	if err != nil {
		t.Fatal(err)
	}

	params := handler.next(t)

	if params.URI != uri || len(params.Diagnostics) != 3 {
		t.Fatalf("Unexpected diagnostics: %+v", params)
	}

	for i, want := range []struct {
		line     int
		end      int
		severity int
	}{
		{0, 11, langserver.SEVERITY_ERROR},
		{1, 6, langserver.SEVERITY_ERROR},
		{2, 12, langserver.SEVERITY_WARNING},
	} {
		diag := params.Diagnostics[i]

		if diag.Range.Start.Line != want.line || diag.Range.End.Character != want.end ||
			diag.Severity != want.severity {
			t.Fatalf("Diagnostic %d mismatch: %+v", i, diag)
		}

		if strings.HasPrefix(diag.Message, "0") {
			t.Fatalf("Diagnostic kept its line prefix: %q", diag.Message)
		}
	}

	err = conn.Notify(ctx, "textDocument/didChange", langserver.DidChangeTextDocumentParams{
		TextDocument: langserver.VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []langserver.TextDocumentContentChangeEvent{
			{Text: ".define n = 1\nMAIN: prn #n\nstop"},
		},
	})

	if err != nil {
		t.Fatal(err)
	}

	params = handler.next(t)

	if params.Version != 2 || params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Fatalf("Expected an empty diagnostic list, have %+v", params)
	}

	var hover langserver.Hover

	err = conn.Call(ctx, "textDocument/hover", langserver.TextDocumentPositionParams{
		TextDocument: langserver.TextDocumentIdentifier{URI: uri},
		Position:     langserver.Position{Line: 1, Character: 2},
	}, &hover)

	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(hover.Contents.Value, "MAIN") ||
		!strings.Contains(hover.Contents.Value, "100") {
		t.Fatalf("Unexpected hover: %q", hover.Contents.Value)
	}

	err = conn.Notify(ctx, "textDocument/didChange", langserver.DidChangeTextDocumentParams{
		TextDocument: langserver.VersionedTextDocumentIdentifier{URI: uri, Version: 3},
		ContentChanges: []langserver.TextDocumentContentChangeEvent{
			{Text: ".define n 1\nprn #n"},
		},
	})

	if err != nil {
		t.Fatal(err)
	}

	params = handler.next(t)

	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Range.Start.Line != 0 {
		t.Fatalf("Expected one macro diagnostic, have %+v", params.Diagnostics)
	}

	err = conn.Notify(ctx, "textDocument/didClose", langserver.DidCloseTextDocumentParams{
		TextDocument: langserver.TextDocumentIdentifier{URI: uri},
	})

	if err != nil {
		t.Fatal(err)
	}

	if params = handler.next(t); len(params.Diagnostics) != 0 {
		t.Fatalf("Diagnostics not cleared on close: %+v", params.Diagnostics)
	}
}

func TestUnknownMethod(t *testing.T) {
	conn, _ := connect(t)

	err := conn.Call(context.Background(), "workspace/symbol", map[string]string{}, nil)

	rpcErr, ok := err.(*jsonrpc2.Error)

	if !ok || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Fatalf("Expected method not found, have %v", err)
	}

	if err := conn.Call(context.Background(), "shutdown", nil, nil); err != nil {
		t.Fatal(err)
	}
}
