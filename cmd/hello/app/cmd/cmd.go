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
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/argocd-demo/hello/pkg/hello/constants"
	"github.com/argocd-demo/hello/pkg/hello/output/log"
	"github.com/argocd-demo/hello/pkg/hello/server"
	"github.com/argocd-demo/hello/pkg/hello/version"
)

var (
	v string

	// for tests
	runServer = server.Run
)

// NewHelloCommand returns the root command. Run without arguments, it serves
// the greeting on constants.Port until the process is killed.
func NewHelloCommand(out, err io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hello",
		Short:        "Serves the Argo CD demo greeting over HTTP.",
		Long:         fmt.Sprintf("Serves %q on GET / at port %d.", constants.Greeting, constants.Port),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), constants.Port)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(err)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := SetUpLogs(out, v); err != nil {
			return err
		}
		ctx := log.WithEventContext(context.Background(), log.EventContext{Component: log.CLI})
		log.Entry(ctx).Debugf("hello %+v", version.Get())
		return nil
	}

	rootCmd.AddCommand(NewCmdVersion(out))

	rootCmd.PersistentFlags().StringVarP(&v, "verbosity", "v", constants.DefaultLogLevel.String(), "Log level (trace, debug, info, warn, error, fatal, panic)")
	return rootCmd
}

// SetUpLogs points logrus at out and sets the global level.
func SetUpLogs(out io.Writer, level string) error {
	logrus.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	logrus.SetLevel(lvl)
	return nil
}
