// SPDX-License-Identifier: MPL-2.0

package taxonomy

import "strconv"

// gidPrefix is the scheme and namespace of every global identifier.
const gidPrefix = "gid://taxon/"

// CategoryGID returns the global identifier of a category id.
func CategoryGID(id string) string { return gidPrefix + "TaxonomyCategory/" + id }

// AttributeGID returns the global identifier of a base attribute id.
func AttributeGID(id int) string { return gidPrefix + "TaxonomyAttribute/" + strconv.Itoa(id) }

// ValueGID returns the global identifier of a value id.
func ValueGID(id int) string { return gidPrefix + "TaxonomyValue/" + strconv.Itoa(id) }
