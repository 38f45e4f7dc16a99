// Copyright 2026 The Caliper Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package version holds the build information stamped in at link time.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// Set via -ldflags at build time.
var (
	ReleaseVersion = "v0.0.0-master"
	BuildTS        = "None"
	GitHash        = "None"
	GitBranch      = "None"
)

var versionHash = regexp.MustCompile("-[0-9]+-g[0-9a-f]{7,}(-dev)?")

// SanitizeVersion removes the "v" prefix and the git hash suffix.
func SanitizeVersion(v string) string {
	if v == "" {
		return v
	}
	v = versionHash.ReplaceAllLiteralString(v, "")
	v = strings.TrimSuffix(v, "-dirty")
	return strings.TrimPrefix(v, "v")
}

// GetVersionInfo renders the build information as a printable block.
func GetVersionInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Release Version: %s\n", ReleaseVersion)
	fmt.Fprintf(&b, "Git Commit Hash: %s\n", GitHash)
	fmt.Fprintf(&b, "Git Branch: %s\n", GitBranch)
	fmt.Fprintf(&b, "UTC Build Time: %s", BuildTS)
	return b.String()
}

// LogVersionInfo writes the build information to the process log at startup.
func LogVersionInfo() {
	log.Info("welcome to caliper",
		zap.String("release-version", ReleaseVersion),
		zap.String("git-hash", GitHash),
		zap.String("git-branch", GitBranch),
		zap.String("utc-build-time", BuildTS))
}
