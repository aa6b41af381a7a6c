/*
Copyright 2026 The Argo CD Demo Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/argocd-demo/hello/pkg/hello/version"
)

var fullVersion bool

func NewCmdVersion(out io.Writer) *cobra.Command {
	return NewCmd(out, "version").
		WithDescription("Print the version information").
		WithLongDescription("Print the semantic version of this build, or \"dev\" when it was built without one.").
		WithFlags(func(f *pflag.FlagSet) {
			f.BoolVar(&fullVersion, "full", false, "Print the full build information")
		}).
		NoArgs(doVersion)
}

func doVersion(out io.Writer) error {
	info := version.Get()
	if !fullVersion {
		_, err := fmt.Fprintln(out, info.Version)
		return err
	}

	_, err := fmt.Fprintf(out, "version: %s\ncommit: %s\ntree: %s\nbuilt: %s\ngo: %s (%s)\nplatform: %s\n",
		info.Version, info.GitCommit, info.GitTreeState, info.BuildDate, info.GoVersion, info.Compiler, info.Platform)
	return err
}
