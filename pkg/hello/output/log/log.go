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

package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

var ContextKey = contextKey{}

// Component names used in log entries.
const (
	Server = "server"
	CLI    = "cli"
)

type EventContext struct {
	Component string
	RequestID string
}

// WithEventContext returns a copy of ctx carrying ec, to be picked up by Entry.
func WithEventContext(ctx context.Context, ec EventContext) context.Context {
	return context.WithValue(ctx, ContextKey, ec)
}

// Entry takes an context.Context and constructs a logrus.Entry from it, adding
// fields for component and request information
func Entry(ctx context.Context) *logrus.Entry {
	val := ctx.Value(ContextKey)
	if eventContext, ok := val.(EventContext); ok {
		fields := logrus.Fields{"component": eventContext.Component}
		if eventContext.RequestID != "" {
			fields["request"] = eventContext.RequestID
		}
		return logrus.WithFields(fields)
	}

	// The server is the only long running part of the program, so it is the
	// default component.
	return logrus.WithFields(logrus.Fields{
		"component": Server,
	})
}
