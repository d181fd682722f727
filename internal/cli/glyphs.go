package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glyphsign/glyphsign/pkg/grid"
)

// glyphsCommand creates the glyphs command for listing and validating
// a project's glyph definitions.
func (c *CLI) glyphsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "glyphs [project.json]",
		Short: "List and validate a project's glyph definitions",
		Long: `List and validate a project's glyph definitions.

Each glyph is shown with its segment count. Glyphs referencing segments
that no longer exist in the layout are flagged; planners skip such
references, but they usually indicate a stale glyph library.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := grid.ReadProjectFile(args[0])
			if err != nil {
				return fmt.Errorf("load project: %w", err)
			}

			names := project.Glyphs.Names()
			if len(names) == 0 {
				printInfo("Project defines no glyphs")
				return nil
			}

			stale := 0
			for _, name := range names {
				set, _ := project.Glyphs.Active(name)
				missing := project.Glyphs.Unknown(name, project.Grid)
				printKeyValue(name, fmt.Sprintf("%d segments", len(set)))
				if len(missing) > 0 {
					stale++
					printWarning("%s references missing segments: %v", name, missing)
				}
			}

			printNewline()
			if stale == 0 {
				printSuccess("%d glyphs, all segment references valid", len(names))
			} else {
				printWarning("%d of %d glyphs reference missing segments", stale, len(names))
			}
			return nil
		},
	}
}
