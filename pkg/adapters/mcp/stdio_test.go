package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeStdio_ToolsList(t *testing.T) {
	s := newTestServer(t, "http://localhost:1", false)

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.ServeStdio(ctx, inR, outW) }()

	go func() {
		_, _ = io.WriteString(inW, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n")
	}()

	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(outR)
		sc.Buffer(make([]byte, 1<<20), 1<<20)
		if sc.Scan() {
			lines <- sc.Text()
		}
	}()

	select {
	case line := <-lines:
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		assert.EqualValues(t, 1, resp["id"])
		tools := resp["result"].(map[string]any)["tools"].([]any)
		assert.Len(t, tools, 17)
	case <-time.After(5 * time.Second):
		t.Fatal("no response on stdout")
	}

	cancel()
	_ = inW.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stdio server did not stop")
	}
}
