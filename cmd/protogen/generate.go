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
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beef331/protogo"
)

func newGenerateCmd() *cobra.Command {
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Compile a proto3 schema file into a generated Go source file.",
		RunE:  runGenerate,
	}

	generate.Flags().String("in", "", "Path to the input .proto schema file.")
	generate.Flags().String("out", "", "Path to write the generated Go source to.")
	generate.Flags().Bool("diagnostic", false, "Print the generated artifact and resolved schema tree to stderr.")
	generate.Flags().Bool("watch", false, "Recompile whenever --in changes.")
	generate.MarkFlagRequired("in")
	generate.MarkFlagRequired("out")

	return generate
}

func runGenerate(cmd *cobra.Command, args []string) error {
	viper.BindPFlags(cmd.Flags())

	in := viper.GetString("in")
	out := viper.GetString("out")
	diagnostic := viper.GetBool("diagnostic")
	watch := viper.GetBool("watch")

	opts := protogo.Options{
		Diagnostic:  diagnostic,
		PackageName: viper.GetString("package_name"),
	}

	if err := compileOnce(in, out, opts); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchAndRecompile(in, out, opts)
}

func compileOnce(in, out string, opts protogo.Options) error {
	artifact, err := protogo.CompileFile(in, opts)
	if err != nil {
		return fmt.Errorf("protogen: compiling %s: %w", in, err)
	}
	if err := os.WriteFile(out, []byte(artifact.Source()), 0o644); err != nil {
		return fmt.Errorf("protogen: writing %s: %w", out, err)
	}
	log.Infof("protogen: wrote %s from %s", out, in)
	return nil
}

// watchAndRecompile recompiles in whenever it changes on disk,
// debounced by the configured watch_debounce so editors that write
// then rename the same path don't trigger two compiles for one save.
func watchAndRecompile(in, out string, opts protogo.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("protogen: creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(in)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("protogen: watching %s: %w", dir, err)
	}

	debounce := watchDebounce()
	var timer *time.Timer
	recompile := func() {
		if err := compileOnce(in, out, opts); err != nil {
			log.Errorf("protogen: %v", err)
		}
	}

	log.Infof("protogen: watching %s (debounce %s)", in, debounce)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(in) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, recompile)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("protogen: watcher error: %v", err)
		}
	}
}
