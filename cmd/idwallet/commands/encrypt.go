package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"idwallet/internal/domain"
)

var hexOutput bool

// encrypt <ref> <message>: print the hex sealed box.
func encryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <ref> <message>",
		Short: "Seal a message to an X25519 wallet key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			msg, err := message(args[1])
			if err != nil {
				return err
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			box, err := appCtx.Keys.Encrypt(id, passphrase, domain.ContentRef(args[0]), msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(box))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "message is hex encoded")
	return cmd
}

// decrypt <ref> <box-hex>
func decryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <ref> <box-hex>",
		Short: "Open a sealed message with an X25519 wallet key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			box, err := hex.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("box: %w", err)
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			pt, err := appCtx.Keys.Decrypt(id, passphrase, domain.ContentRef(args[0]), box)
			if err != nil {
				return err
			}
			if hexOutput {
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pt))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pt))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexOutput, "hex", false, "print plaintext hex encoded")
	return cmd
}
