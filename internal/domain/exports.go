package domain

import (
	interfaces "idwallet/internal/domain/interfaces"
	types "idwallet/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeyType      = types.KeyType
	WalletID     = types.WalletID
	ContentRef   = types.ContentRef
	Fingerprint  = types.Fingerprint
	LockedWallet = types.LockedWallet
	KeySummary   = types.KeySummary
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	WalletService = interfaces.WalletService
	KeyOpsService = interfaces.KeyOpsService
	WalletStore   = interfaces.WalletStore
)
