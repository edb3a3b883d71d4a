package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"idwallet/internal/domain"
	"idwallet/internal/domain/types"
)

var controllers []string

// keygen <type>: generate a random key of <type>.
func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen <type>",
		Short: "Generate a key in the wallet",
		Long:  "Generate a key in the wallet. Types: " + keyTypeList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			kt, err := types.ParseKeyType(args[0])
			if err != nil {
				return err
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			sum, err := appCtx.Wallets.GenerateKey(id, passphrase, kt, controllers)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&controllers, "controller", nil, "controller DID (repeatable)")
	return cmd
}

// import <type> <secret-hex>: derive a key of <type> from a hex secret.
func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <type> <secret-hex>",
		Short: "Import a key from a hex-encoded secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			kt, err := types.ParseKeyType(args[0])
			if err != nil {
				return err
			}
			secret, err := hex.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("secret: %w", err)
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			sum, err := appCtx.Wallets.ImportKey(id, passphrase, kt, secret, controllers)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&controllers, "controller", nil, "controller DID (repeatable)")
	return cmd
}

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List keys in the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			keys, err := appCtx.Wallets.ListKeys(id, passphrase)
			if err != nil {
				return err
			}
			for _, k := range keys {
				printSummary(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <ref>",
		Short: "Delete a key from the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			if err := appCtx.Wallets.RemoveKey(id, passphrase, domain.ContentRef(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func printSummary(w io.Writer, k domain.KeySummary) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n", k.Reference, k.Type, k.Fingerprint, hex.EncodeToString(k.PublicKey))
	if len(k.Controller) > 0 {
		fmt.Fprintf(w, "  controller: %s\n", strings.Join(k.Controller, ", "))
	}
}

func keyTypeList() string {
	var names []string
	for _, kt := range types.KeyTypes() {
		if kt.Implemented() {
			names = append(names, kt.String())
		}
	}
	return strings.Join(names, ", ")
}
