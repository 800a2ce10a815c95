// k8sdeployer generates Kubernetes manifests from a microservice description.
package main

import (
	"os"

	"github.com/hupe1980/k8sdeployer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
