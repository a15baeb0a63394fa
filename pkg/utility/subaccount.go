package utility

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// A subaccount id is a 66-character hex string: the 42-character wallet
// address followed by a 24-character suffix identifying the sub-ledger.
const (
	subaccountIDLength = 66
	addressLength      = 42
)

func IsSubaccountID(s string) bool {
	if len(s) != subaccountIDLength || !strings.HasPrefix(s, "0x") {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// SubaccountIndex extracts the numeric sub-ledger index from a subaccount id.
// Malformed input maps to index 0, the default trading account.
func SubaccountIndex(subaccountID string) int {
	if len(subaccountID) != subaccountIDLength {
		return 0
	}
	idx, err := strconv.ParseInt(subaccountID[addressLength:], 16, 64)
	if err != nil {
		return 0
	}
	return int(idx)
}

// DefaultSubaccountID derives the index-zero subaccount for a wallet address.
func DefaultSubaccountID(address string) string {
	return address + strings.Repeat("0", subaccountIDLength-addressLength)
}

// SubaccountIDFromSlug packs a market slug into the subaccount suffix, the
// scheme used by strategy sub-ledgers.
func SubaccountIDFromSlug(address, slug string) string {
	slugHex := hex.EncodeToString([]byte(slug))
	padding := subaccountIDLength - addressLength - len(slugHex)
	if padding < 0 {
		return ""
	}
	return address + strings.Repeat("0", padding) + slugHex
}

// SlugFromSubaccountID is the inverse of SubaccountIDFromSlug. Returns an
// empty string when the suffix is not a packed slug.
func SlugFromSubaccountID(subaccountID string) string {
	if len(subaccountID) != subaccountIDLength {
		return ""
	}
	suffix := strings.TrimLeft(subaccountID[addressLength:], "0")
	if len(suffix)%2 != 0 {
		return ""
	}
	raw, err := hex.DecodeString(suffix)
	if err != nil {
		return ""
	}
	return string(raw)
}
