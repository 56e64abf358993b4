// scene-tool lists the built-in scenes the renderer can trace.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"lantern/scenes"
)

func main() {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, b := range scenes.Registry() {
		table.Append([]string{b.Name, b.Description})
	}
	table.Render()

	fmt.Fprint(os.Stdout, buf.String())
}
