package k8s

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"k8s.io/apimachinery/pkg/util/validation"
)

// IsImageDigest returns true if the image reference pins a sha256 digest.
func IsImageDigest(image string) bool {
	return strings.Contains(image, "@sha256:")
}

// ImageTag returns the tag of an image reference, or "" when the reference
// has no explicit tag or is pinned by digest. Colons in a registry host
// ("registry.io:5000/app") are not mistaken for a tag separator.
func ImageTag(image string) string {
	if image == "" || IsImageDigest(image) {
		return ""
	}

	ref := image
	if slashIdx := strings.LastIndex(ref, "/"); slashIdx >= 0 {
		ref = ref[slashIdx+1:]
	}

	if colonIdx := strings.LastIndex(ref, ":"); colonIdx >= 0 {
		return ref[colonIdx+1:]
	}

	return ""
}

// HasLatestTag returns true if the image uses :latest or has no explicit tag.
// Images with digests are never considered "latest".
func HasLatestTag(image string) bool {
	if image == "" || IsImageDigest(image) {
		return false
	}

	tag := ImageTag(image)

	return tag == "" || tag == "latest"
}

// ImageVersion returns the image tag when it is a semantic version
// ("1.4.2", "v2", "v1.0.0-rc.1") usable as a label value.
func ImageVersion(image string) (string, bool) {
	tag := ImageTag(image)
	if tag == "" || tag == "latest" {
		return "", false
	}

	if _, err := semver.NewVersion(tag); err != nil {
		return "", false
	}

	if len(validation.IsValidLabelValue(tag)) > 0 {
		return "", false
	}

	return tag, true
}
