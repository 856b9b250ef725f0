package vk

import "fmt"

// MakeAPIVersion packs a Vulkan API version the way VK_MAKE_API_VERSION does.
func MakeAPIVersion(variant, major, minor, patch uint32) uint32 {
	return variant<<29 | major<<22 | minor<<12 | patch
}

var (
	APIVersion1_0 = MakeAPIVersion(0, 1, 0, 0)
	APIVersion1_1 = MakeAPIVersion(0, 1, 1, 0)
	APIVersion1_2 = MakeAPIVersion(0, 1, 2, 0)
	APIVersion1_3 = MakeAPIVersion(0, 1, 3, 0)
)

// APIVersionMajor extracts the major component of a packed version.
func APIVersionMajor(v uint32) uint32 { return (v >> 22) & 0x7f }

// APIVersionMinor extracts the minor component of a packed version.
func APIVersionMinor(v uint32) uint32 { return (v >> 12) & 0x3ff }

// APIVersionPatch extracts the patch component of a packed version.
func APIVersionPatch(v uint32) uint32 { return v & 0xfff }

// AtLeast reports whether packed version v is at least major.minor,
// ignoring variant and patch.
func AtLeast(v, major, minor uint32) bool {
	vMajor, vMinor := APIVersionMajor(v), APIVersionMinor(v)
	if vMajor != major {
		return vMajor > major
	}
	return vMinor >= minor
}

// FormatAPIVersion renders a packed version as "major.minor.patch".
func FormatAPIVersion(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", APIVersionMajor(v), APIVersionMinor(v), APIVersionPatch(v))
}
