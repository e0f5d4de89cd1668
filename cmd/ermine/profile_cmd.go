package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnegrue/ermine/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved threshold presets",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the given thresholds as a named profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSave,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved profile's thresholds",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

func init() {
	profileSaveCmd.Flags().Float64("minsup", 0.5, "minimum relative support in [0,1]")
	profileSaveCmd.Flags().Float64("minconf", 0.75, "minimum confidence in [0,1]")
	profileSaveCmd.Flags().Bool("prune", true, "enable the Sparse Count Matrix pruning hint")

	profileCmd.AddCommand(profileSaveCmd, profileListCmd, profileShowCmd)
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	minSup, _ := cmd.Flags().GetFloat64("minsup")
	minConf, _ := cmd.Flags().GetFloat64("minconf")
	prune, _ := cmd.Flags().GetBool("prune")

	store := profile.NewStore(defaultProfileDir())
	p := profile.Profile{Name: args[0], MinSup: minSup, MinConf: minConf, Prune: prune}
	if err := store.Save(p); err != nil {
		return err
	}
	fmt.Printf("saved profile %q\n", args[0])
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	store := profile.NewStore(defaultProfileDir())
	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no saved profiles")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	store := profile.NewStore(defaultProfileDir())
	p, err := store.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: minsup=%.3f minconf=%.3f prune=%v\n", p.Name, p.MinSup, p.MinConf, p.Prune)
	return nil
}
