// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir for tests. os.UserHomeDir ignores a
// HOME override on some platforms, so pointing tests at a temp directory
// needs an explicit hook.
var configDirOverride string

// Reset clears the config directory override. Tests register it as cleanup.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride pins ConfigDir to the given path until Reset. Tests
// use it to keep pack directories and config files inside t.TempDir.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
