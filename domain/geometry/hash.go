package geometry

// HashCode computes a deterministic 31-polynomial hash of the string, wrapped
// to the 32-bit signed range at each step. The empty string hashes to 0. It is
// used for low-collision bucket assignment only, never for anything
// security-sensitive.
func HashCode(s string) int32 {
	var hash int32
	for _, r := range s {
		hash = hash*31 + int32(r)
	}
	return hash
}

// cursorPalette is the set of colors assigned to collaborator cursors
var cursorPalette = []string{
	"#E63946", "#F4A261", "#E9C46A", "#2A9D8F",
	"#264653", "#6A4C93", "#1982C4", "#FF595E",
}

// UserColor deterministically assigns a cursor color to a user id
func UserColor(userID string) string {
	bucket := uint32(HashCode(userID))
	return cursorPalette[int(bucket)%len(cursorPalette)]
}
