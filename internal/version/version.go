// Package version provides build-time metadata for the k8sdeployer binary.
// The values are injected at compile time via -ldflags, e.g.
//
//	-X github.com/hupe1980/k8sdeployer/internal/version.version=v0.3.0
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the tool name, also stamped on generated manifests as the
// app.kubernetes.io/managed-by label.
const Name = "k8sdeployer"

var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// Info holds the build metadata for the binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`

	// KubernetesAPI is the k8s.io/api module version the manifests are
	// built from. Empty when build info is unavailable.
	KubernetesAPI string `json:"kubernetesApi,omitempty"`
}

// kubernetesAPIModule is the module whose version Info reports.
const kubernetesAPIModule = "k8s.io/api"

// GetInfo returns the current build information.
func GetInfo() Info {
	commit := gitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}

	return Info{
		Version:   version,
		GitCommit: commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,

		KubernetesAPI: moduleVersion(kubernetesAPIModule),
	}
}

func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, mod := range info.Deps {
		if mod.Path == path {
			return mod.Version
		}
	}

	return ""
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s %s)",
		Name, i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// JSON returns the version info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling version info: %w", err)
	}

	return string(data), nil
}
