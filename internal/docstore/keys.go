package docstore

import "fmt"

// DocumentRef addresses one logical borelog document in the object store.
type DocumentRef struct {
	Project   string
	Structure string
	Borelog   string
}

func (r DocumentRef) String() string {
	return fmt.Sprintf("%s/%s/%s", r.Project, r.Structure, r.Borelog)
}

// Key layout. New documents live under the canonical prefix; documents written by
// earlier deployments may still sit under the legacy prefix, which is kept as a
// read fallback.
const legacyPrefix = "borelogs"

func canonicalRoot(ref DocumentRef) string {
	return fmt.Sprintf("projects/%s/structures/%s/borelogs/%s", ref.Project, ref.Structure, ref.Borelog)
}

func legacyRoot(ref DocumentRef) string {
	return fmt.Sprintf("%s/%s/%s", legacyPrefix, ref.Project, ref.Borelog)
}

func indexKey(root string) string {
	return root + "/index.json"
}

func versionMetaKey(root string, version int) string {
	return fmt.Sprintf("%s/versions/v%d/metadata.json", root, version)
}

func versionDataKey(root string, version int) string {
	return fmt.Sprintf("%s/versions/v%d/data.json", root, version)
}
