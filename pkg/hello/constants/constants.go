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

package constants

import "github.com/sirupsen/logrus"

const (
	// Port is the TCP port the demo server listens on.
	Port = 3000

	// Greeting is the body served on the root route.
	Greeting = "Hello World from Argo CD Demo!"

	RootPath = "/"

	// DefaultLogLevel is the default global verbosity. It has to be at least
	// info so that the startup line is printed.
	DefaultLogLevel = logrus.InfoLevel
)
