package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikachuaaaa/RPGBot/internal/config"
	"github.com/pikachuaaaa/RPGBot/internal/gateway"
)

const greetCommand = `---
description: Greet a fellow adventurer
params:
  - name: name
---
Hail, ${name}!
`

// project creates a working directory with one template command and keeps
// user config out of the way.
func project(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".state"))
	for _, key := range []string{"RPGBOT_CONFIG", "RPGBOT_CONFIG_CONTENT", "RPGBOT_CONFIG_DIR", "RPGBOT_PREFIX"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	cmdDir := filepath.Join(dir, ".rpgbot", "command")
	require.NoError(t, os.MkdirAll(cmdDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cmdDir, "greet.md"), []byte(greetCommand), 0644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	parseJSON, listJSON, printLogs, logToFile = false, false, false, false
	configGlobal, configForce = false, false
	logLevel, envFile = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	dir := project(t)

	out, err := execute(t, "--directory", dir, "parse", "!rpg ping!")
	require.NoError(t, err)
	assert.Contains(t, out, "pong!")

	out, err = execute(t, "--directory", dir, "parse", "!rpg", "greet", "Aria")
	require.NoError(t, err)
	assert.Contains(t, out, "Hail, Aria!")

	out, err = execute(t, "--directory", dir, "parse", "just talking")
	require.NoError(t, err)
	assert.Contains(t, out, "ignored (no_prefix)")

	out, err = execute(t, "--directory", dir, "parse", "!rpg atack")
	assert.ErrorIs(t, err, errCommandFailed)
	assert.Contains(t, out, `(did you mean "attack"?)`)
}

func TestParseCommand_JSON(t *testing.T) {
	dir := project(t)

	out, err := execute(t, "--directory", dir, "parse", "--json", "!rpg roll 1d2 modifier: 2")
	require.NoError(t, err)

	var res gateway.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Handled)
	assert.Equal(t, "!rpg roll", res.Command)
	require.Len(t, res.Replies, 1)
	assert.Regexp(t, `^1d2\+2: \[[12]\] = [34]$`, res.Replies[0].Text)
}

func TestHelpListsTemplates(t *testing.T) {
	dir := project(t)

	out, err := execute(t, "--directory", dir, "parse", "!rpg help greet")
	require.NoError(t, err)
	assert.Contains(t, out, "!rpg greet <name>")
	assert.Contains(t, out, "Greet a fellow adventurer")
}

func TestListCommand(t *testing.T) {
	dir := project(t)

	out, err := execute(t, "--directory", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "!rpg roll <dice> [modifier=0]")
	assert.Contains(t, out, "!rpg greet <name>")

	out, err = execute(t, "--directory", dir, "list", "--json")
	require.NoError(t, err)
	var infos []gateway.CommandInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Contains(t, names, "party")
	assert.Contains(t, names, "greet")
}

func TestInvalidConfig(t *testing.T) {
	dir := project(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rpgbot.json"), []byte(`{"parser": {"packing": ["("]}}`), 0644))

	_, err := execute(t, "--directory", dir, "list")
	assert.ErrorContains(t, err, "invalid packing pair")
}

func TestConfigInit(t *testing.T) {
	dir := project(t)
	path := filepath.Join(dir, ".rpgbot", "rpgbot.json")

	out, err := execute(t, "--directory", dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	require.FileExists(t, path)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "!rpg", cfg.Prefix)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)

	_, err = execute(t, "--directory", dir, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "--directory", dir, "config", "init", "--force")
	require.NoError(t, err)

	// The starter config still builds the bot.
	out, err = execute(t, "--directory", dir, "parse", "!rpg ping!")
	require.NoError(t, err)
	assert.Contains(t, out, "pong!")
}

func TestConfigInit_Global(t *testing.T) {
	dir := project(t)

	_, err := execute(t, "--directory", dir, "config", "init", "--global")
	require.NoError(t, err)
	assert.FileExists(t, config.GlobalConfigPath())
	assert.NoFileExists(t, filepath.Join(dir, ".rpgbot", "rpgbot.json"))
}
