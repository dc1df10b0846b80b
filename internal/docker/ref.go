package docker

// Repository is the registry repository the service image is published
// under.
const Repository = "diogosantosua/onboarding-tools"

// LatestTag is always applied alongside the resolved version tag.
const LatestTag = "latest"

// ImageRef builds the full image reference for a tag.
func ImageRef(tag string) string {
	return Repository + ":" + tag
}
