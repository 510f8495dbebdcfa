// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/taxon/taxon/cmd/taxon"

func main() {
	cmd.Execute()
}
