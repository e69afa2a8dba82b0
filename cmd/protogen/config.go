// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Defaults for settings a config file or flag may override, bound
// once up front the way gnmidiff/cmd/root.go seeds viper before any
// subcommand reads from it.
const (
	defaultPackageName    = "protogen"
	defaultWatchDebounce  = 200 * time.Millisecond
	defaultDiagnosticFlag = false
)

func setConfigDefaults() {
	viper.SetDefault("package_name", defaultPackageName)
	viper.SetDefault("diagnostic", defaultDiagnosticFlag)
	viper.SetDefault("watch_debounce", defaultWatchDebounce)
}

// loadConfigFile reads path, if non-empty, into viper's config store
// ahead of flag binding, mirroring gnmidiff/cmd/root.go's
// PersistentPreRunE.
func loadConfigFile(path string) error {
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("protogen: reading config %s: %w", path, err)
	}
	return nil
}

// watchDebounce reads the configured debounce duration through
// viper.GetDuration: a time.Duration-shaped string ("200ms") is parsed
// as written, and a plain number is taken as nanoseconds. A value that
// is not positive falls back to defaultWatchDebounce.
func watchDebounce() time.Duration {
	if d := viper.GetDuration("watch_debounce"); d > 0 {
		return d
	}
	return defaultWatchDebounce
}
