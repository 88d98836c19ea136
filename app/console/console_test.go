package console_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-rio/app/console"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_ENV=testing\n"), 0o600))

	var out bytes.Buffer
	root := console.NewRootCommand()
	root.SetOut(&out)
	root.SetArgs(append(args, "--env", envFile))
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestRoutesCommand(t *testing.T) {
	out := run(t, "routes")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "METHOD")
	assert.Regexp(t, `^GET\s+/\s+home\s+Closure$`, lines[1])
	assert.Regexp(t, `^GET\s+/random/\{limit\}\s+app_micro_randomnumber\s+micro:RandomNumber$`, lines[2])
}

func TestServicesCommand(t *testing.T) {
	out := run(t, "services")

	for _, id := range []string{"settings", "request", "router", "callableResolver", "config", "logger", "view", "micro"} {
		assert.Contains(t, strings.Fields(out), id)
	}
}

func TestSettingsCommand(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	out := run(t, "settings")

	assert.Contains(t, out, "cookieLifetime: 20 minutes\n")
	assert.Contains(t, out, "httpVersion: \"1.1\"\n")
	assert.Contains(t, out, "displayErrorDetails: false\n")
}
