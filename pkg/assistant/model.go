package assistant

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecModel treats an external command as the inference runtime: the prompt is
// written to its stdin and its stdout is taken as the raw reply. The command
// line comes from configuration, so any local or remote model wrapper works.
type ExecModel struct {
	Command string
	Args    []string
}

func (m *ExecModel) Reply(ctx context.Context, prompt string) (string, error) {
	if m.Command == "" {
		return "", fmt.Errorf("no model command configured")
	}

	cmd := exec.CommandContext(ctx, m.Command, m.Args...)
	cmd.Stdin = strings.NewReader(prompt)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("model command %q: %w", m.Command, err)
	}
	return strings.TrimSpace(out.String()), nil
}
