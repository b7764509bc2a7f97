package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function
func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalRuntime := runtimeEnabled.Load()
	originalOutput := debugOutput
	originalFile := debugFile
	return func() {
		EnableDebug = originalDebug
		runtimeEnabled.Store(originalRuntime)
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")

	EnableDebug = "false"
	SetEnabled(false)
	assert.False(t, IsDebugEnabled())

	EnableDebug = "true"
	assert.True(t, IsDebugEnabled())

	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())

	SetEnabled(true)
	assert.True(t, IsDebugEnabled())
}

func TestIsDebugEnabled_Env(t *testing.T) {
	defer saveAndRestoreState()()
	EnableDebug = "false"
	SetEnabled(false)

	t.Setenv("DEBUG", "1")
	assert.True(t, IsDebugEnabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	Log("TEST", "Hello %s", "World")

	output := buf.String()
	assert.Contains(t, output, "[DEBUG:TEST]")
	assert.Contains(t, output, "Hello World")
}

func TestLog_Disabled(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "false"
	SetEnabled(false)
	Log("TEST", "Should not appear")

	assert.Empty(t, buf.String())
}

func TestComponentLoggers(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"

	LogSearch("searching for %s\n", "כהן")
	LogStore("built store with %d records\n", 2)
	LogWatch("reload\n")
	LogMCP("tool call\n")

	output := buf.String()
	for _, tag := range []string{"[DEBUG:SEARCH]", "[DEBUG:STORE]", "[DEBUG:WATCH]", "[DEBUG:MCP]"} {
		assert.Contains(t, output, tag)
	}
	assert.Contains(t, output, "searching for כהן")
}

func TestPrintf_NoWriter(t *testing.T) {
	defer saveAndRestoreState()()

	SetDebugOutput(nil)
	EnableDebug = "true"
	assert.NotPanics(t, func() { Printf("nothing %d", 1) })
}

func TestInitDebugLogFile(t *testing.T) {
	defer saveAndRestoreState()()

	path, err := InitDebugLogFile()
	require.NoError(t, err)
	defer os.Remove(path)

	EnableDebug = "true"
	Log("TEST", "to file\n")
	require.NoError(t, CloseDebugLog())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "to file"))

	// Closing twice is a no-op
	assert.NoError(t, CloseDebugLog())
}
