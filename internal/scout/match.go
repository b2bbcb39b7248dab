package scout

import (
	"strings"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// MatchTagDefinition selects the tag definition that best matches the
// detected DHI version. Tag definitions group aliases of the same image
// stream (e.g. ["2", "2.39", "2.39.0"]), so a detected version can match
// a definition without being listed verbatim.
//
// Preference order:
//  1. Exact match: the version is one of the definition's aliases.
//  2. Prefix match in either direction: "2" matches a definition listing
//     "2.39", and "2.39.0" matches a definition listing "2.39".
//  3. The definition whose aliases include "latest".
//  4. The first definition.
//
// An empty version skips straight to the "latest"/first fallbacks. The
// second return value is false only when no definitions were given at all.
func MatchTagDefinition(version string, defs []model.TagDefinition) (model.TagDefinition, bool) {
	if len(defs) == 0 {
		return model.TagDefinition{}, false
	}

	if version != "" {
		for _, td := range defs {
			if td.HasTag(version) {
				return td, true
			}
		}

		for _, td := range defs {
			for _, tn := range td.TagNames {
				if strings.HasPrefix(tn, version) || strings.HasPrefix(version, tn) {
					return td, true
				}
			}
		}
	}

	for _, td := range defs {
		if td.HasTag("latest") {
			return td, true
		}
	}

	return defs[0], true
}
