package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/overdrivekit/overdrive/internal/config"
	"github.com/overdrivekit/overdrive/internal/ui"
	"github.com/overdrivekit/overdrive/internal/wire"
)

var assumeYes bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configNicknameCmd)
	configCmd.AddCommand(configByteOrderCmd)
	configCmd.AddCommand(configRemoveCmd)

	configRemoveCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Remove without asking")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration file",
	Long: `Show or change the configuration file: known vehicles and preferences.

The file lives in the user configuration directory, for example
~/.config/overdrive/config.yaml on Linux.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show known vehicles and preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		p := ui.NewPrinter(cmd.OutOrStdout())
		if jsonOutput {
			return p.PrintJSON(reg)
		}

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		prefs := reg.Preferences
		params := map[string]string{
			"File":       path,
			"Byte order": prefs.ByteOrder.String(),
			"Lane reset": fmt.Sprintf("%d mm/s, %d mm/s²", prefs.LaneResetSpeed, prefs.LaneResetAccel),
		}
		if prefs.Bridge != nil {
			params["Bridge"] = fmt.Sprintf("%s:%d (announce %t)", prefs.Bridge.Host, prefs.Bridge.Port, prefs.Bridge.Announce)
		}
		p.PrintHeader("Config", "overdrive config show", params)

		addresses := make([]string, 0, len(reg.Vehicles))
		for addr := range reg.Vehicles {
			addresses = append(addresses, addr)
		}
		sort.Strings(addresses)

		for _, addr := range addresses {
			v := reg.Vehicles[addr]
			details := map[string]string{
				"Address":  addr,
				"Model":    strconv.Itoa(int(v.ModelID)),
				"Firmware": fmt.Sprintf("0x%04x", v.Firmware),
			}
			if v.Nickname != "" && v.Name != "" {
				details["Name"] = v.Name
			}
			if !v.LastSeen.IsZero() {
				details["Last seen"] = v.LastSeen.Local().Format("2006-01-02 15:04")
			}
			title := v.DisplayName()
			if title == "" {
				title = addr
			}
			p.PrintSuccess(title, details)
		}
		if len(addresses) == 0 {
			p.Println(ui.StatusStyle.Render("  No vehicles recorded. Use 'overdrive adv --address' to add one."))
		}
		return nil
	},
}

var configNicknameCmd = &cobra.Command{
	Use:     "nickname <address> <nickname>",
	Short:   "Set a vehicle's nickname",
	Example: `  overdrive config nickname e6:d8:52:f1:d9:43 "Red Skull"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		reg.SetVehicleNickname(args[0], args[1])
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Nickname saved", map[string]string{
			"Address":  args[0],
			"Nickname": args[1],
		})
		return nil
	},
}

var configByteOrderCmd = &cobra.Command{
	Use:     "byte-order <big|little>",
	Short:   "Set the default byte order",
	Example: `  overdrive config byte-order big`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := wire.ParseEndian(args[0])
		if err != nil {
			return err
		}
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		reg.Preferences.ByteOrder = order
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Byte order saved", map[string]string{
			"Byte order": order.String(),
		})
		return nil
	},
}

var configRemoveCmd = &cobra.Command{
	Use:   "remove <address>",
	Short: "Forget a vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		v := reg.GetVehicle(args[0])
		if v == nil {
			return fmt.Errorf("no vehicle recorded for %s", args[0])
		}

		if !assumeYes && !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			"Forget "+args[0],
			[]string{"The nickname and last seen firmware of " + args[0] + " are lost"},
			"yes") {
			return nil
		}

		reg.RemoveVehicle(args[0])
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Vehicle removed", map[string]string{"Address": args[0]})
		return nil
	},
}
