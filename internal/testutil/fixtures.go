// SPDX-License-Identifier: MPL-2.0

package testutil

import "testing"

// Sample taxonomy sources used across loader, dist, and CLI tests. The
// extended attributes are listed before their bases on purpose.
const (
	SampleValuesYAML = `- id: 1
  name: Black
  friendly_id: color__black
  handle: color__black
- id: 2
  name: Other
  friendly_id: color__other
  handle: color__other
- id: 3
  name: Blue
  friendly_id: color__blue
  handle: color__blue
- id: 4
  name: "10"
  friendly_id: size__10
  handle: size__10
- id: 5
  name: "2"
  friendly_id: size__2
  handle: size__2
- id: 6
  name: "1/2"
  friendly_id: size__1-2
  handle: size__1-2
`

	SampleAttributesYAML = `base_attributes:
  - id: 1
    name: Color
    description: Defines the primary color
    friendly_id: color
    handle: color
    values:
      - color__black
      - color__other
      - color__blue
  - id: 2
    name: Size
    description: Defines the size
    friendly_id: size
    handle: size
    sorting: custom
    values:
      - size__10
      - size__2
      - size__1-2
extended_attributes:
  - name: Upper color
    description: Defines the color of the upper
    friendly_id: upper_color
    handle: upper-color
    values_from: shoe_color
  - name: Shoe color
    description: Defines the color of the shoe
    friendly_id: shoe_color
    handle: shoe-color
    values_from: color
`

	SampleApparelYAML = `- id: aa
  name: Apparel & Accessories
  children:
    - aa-2
    - aa-1
  attributes:
    - color
- id: aa-1
  name: Clothing
  children:
    - aa-1-1
  attributes:
    - size
    - color
- id: aa-1-1
  name: Activewear
  children: []
  attributes:
    - size
- id: aa-2
  name: Shoes
  children: []
  attributes:
    - upper_color
    - shoe_color
`

	SampleSportingGoodsTOML = `[[records]]
id = "sg"
name = "Sporting Goods"
children = ["sg-1"]
attributes = []

[[records]]
id = "sg-1"
name = "Camping"
children = []
attributes = ["color"]
`
)

// WriteSampleData writes a small valid taxonomy source tree into dir:
// two base attributes, a chain of two extended attributes, and the verticals
// "aa" (YAML) and "sg" (TOML).
func WriteSampleData(t testing.TB, dir string) string {
	t.Helper()
	WriteFile(t, dir, "values.yml", SampleValuesYAML)
	WriteFile(t, dir, "attributes.yml", SampleAttributesYAML)
	WriteFile(t, dir, "categories/aa.yml", SampleApparelYAML)
	WriteFile(t, dir, "categories/sg.toml", SampleSportingGoodsTOML)
	return dir
}
