package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "exhaustive", cmd.Use)
	assert.Contains(t, cmd.Long, "budget")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"enumerate", "count", "check", "replay", "sessions"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestEnumerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	enumCmd, _, err := cmd.Find([]string{"enumerate"})
	require.NoError(t, err)

	budgetFlag := enumCmd.Flags().Lookup("budget")
	require.NotNil(t, budgetFlag)
	assert.Equal(t, "4", budgetFlag.DefValue)

	for _, name := range []string{"limit", "schema", "def", "db", "resume", "label"} {
		assert.NotNil(t, enumCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestReplayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replayCmd, _, err := cmd.Find([]string{"replay"})
	require.NoError(t, err)

	dbFlag := replayCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"count", "bool", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}

func TestNewLogger_VerboseEnablesDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	newLogger(&RootOptions{}, buf).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&RootOptions{Verbose: true}, buf).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestMustMarkRequired(t *testing.T) {
	cmd := &cobra.Command{Use: "demo"}
	cmd.Flags().String("db", "", "")

	assert.NotPanics(t, func() { mustMarkRequired(cmd, "db") })
	assert.Equal(t, []string{"true"}, cmd.Flags().Lookup("db").Annotations[cobra.BashCompOneRequiredFlag])

	assert.Panics(t, func() { mustMarkRequired(cmd, "dbb") })
}

func TestRequiredDBFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"replay", "sessions"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		flag := sub.Flags().Lookup("db")
		require.NotNil(t, flag, name)
		assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag], name)
	}
}
