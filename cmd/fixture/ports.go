// cmd/fixture/ports.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshajohnson/sea-micro/internal/link"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports to find the fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := link.ListPorts()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(ports) == 0 {
				fmt.Fprintln(w, "no serial ports found")
				return nil
			}
			for _, p := range ports {
				fmt.Fprintln(w, p.String())
			}
			return nil
		},
	}
}
