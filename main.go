// SPDX-License-Identifier: MPL-2.0

package main

import cmd "respack-cli/cmd/respack"

func main() {
	cmd.Execute()
}
