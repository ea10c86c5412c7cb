package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dentalvoice/frontdesk/internal/dispatch"
)

func TestNewServeCmd_Defaults(t *testing.T) {
	cmd := newServeCmd()

	tests := []struct {
		flag     string
		expected string
	}{
		{"transport", "stdio"},
		{"http-addr", ":8080"},
		{"metrics-addr", ":9090"},
		{"env-file", ".env"},
		{"debug", "false"},
		{"metrics-enabled", "true"},
	}

	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("flag %q not registered", tt.flag)
			continue
		}
		if f.DefValue != tt.expected {
			t.Errorf("flag %q default = %q, want %q", tt.flag, f.DefValue, tt.expected)
		}
	}
}

func TestSpeechNotifier_NoSessionFallsBackToLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	srv := mcpserver.NewMCPServer("frontdesk", "test")

	// The sink must satisfy the dispatcher's interface.
	var sink dispatch.SpeechSink = newSpeechNotifier(srv, logger)

	// A context without a client session cannot carry the
	// notification; the utterance must still surface in the log.
	sink.Speak(context.Background(), "Εντάξει, κλείνω το ραντεβού...")

	if !strings.Contains(buf.String(), "κλείνω το ραντεβού") {
		t.Errorf("utterance not logged: %q", buf.String())
	}
}

func TestAckMessages(t *testing.T) {
	if got := ackMessages(nil); got != nil {
		t.Errorf("ackMessages(nil) = %v, want nil (dispatcher defaults)", got)
	}

	msgs := ackMessages([]string{dispatch.FuncCreate, "unknown_function"})

	if msgs[dispatch.FuncCreate] != dispatch.DefaultAckMessages()[dispatch.FuncCreate] {
		t.Errorf("create line = %q", msgs[dispatch.FuncCreate])
	}
	if msgs["unknown_function"] != dispatch.DefaultAckUtterance {
		t.Errorf("unknown function line = %q", msgs["unknown_function"])
	}
	// Functions left out of the configured set are silenced.
	if got, ok := msgs[dispatch.FuncCancel]; !ok || got != "" {
		t.Errorf("cancel line = %q (present %v), want silenced", got, ok)
	}
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3")

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	if !strings.Contains(out.String(), "1.2.3") {
		t.Errorf("version output = %q, want it to contain 1.2.3", out.String())
	}
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "version"} {
		if !names[want] {
			t.Errorf("root command missing %q subcommand", want)
		}
	}
}
