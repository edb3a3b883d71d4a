package commands

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"idwallet/internal/domain"
)

// errBadSignature makes verify exit non-zero for a non-matching signature.
var errBadSignature = errors.New("signature does not verify")

var hexInput bool

// message decodes a positional message argument.
func message(arg string) ([]byte, error) {
	if !hexInput {
		return []byte(arg), nil
	}
	b, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return b, nil
}

// sign <ref> <message>: print the hex signature.
func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <ref> <message>",
		Short: "Sign a message with a wallet key",
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
			sig, err := appCtx.Keys.Sign(id, passphrase, domain.ContentRef(args[0]), msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sig))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "message is hex encoded")
	return cmd
}

// verify <ref> <message> <signature-hex>
func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <ref> <message> <signature-hex>",
		Short: "Verify a signature with a wallet key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			msg, err := message(args[1])
			if err != nil {
				return err
			}
			sig, err := hex.DecodeString(args[2])
			if err != nil {
				return fmt.Errorf("signature: %w", err)
			}
			id, err := selectedWallet()
			if err != nil {
				return err
			}
			ok, err := appCtx.Keys.Verify(id, passphrase, domain.ContentRef(args[0]), msg, sig)
			if err != nil {
				return err
			}
			if !ok {
				return errBadSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "message is hex encoded")
	return cmd
}
