package utility

import (
	"strings"
	"testing"
)

const testAddress = "0x90f8bf6a479f320ead074411a4b0e7944ea8c9c1"

func TestUtilitySubaccount_DefaultSubaccountID(t *testing.T) {
	id := DefaultSubaccountID(testAddress)

	if len(id) != 66 {
		t.Fatalf("expected 66 characters, got %d", len(id))
	}
	if !IsSubaccountID(id) {
		t.Errorf("IsSubaccountID(%s) = false", id)
	}
	if got := SubaccountIndex(id); got != 0 {
		t.Errorf("SubaccountIndex = %d; want 0", got)
	}
}

func TestUtilitySubaccount_SubaccountIndex(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		want   int
	}{
		{"index zero", strings.Repeat("0", 24), 0},
		{"index one", strings.Repeat("0", 23) + "1", 1},
		{"index 255", strings.Repeat("0", 22) + "ff", 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := testAddress + tt.suffix
			if got := SubaccountIndex(id); got != tt.want {
				t.Errorf("SubaccountIndex(%s) = %d; want %d", id, got, tt.want)
			}
		})
	}

	if got := SubaccountIndex("0xshort"); got != 0 {
		t.Errorf("malformed id should map to index 0, got %d", got)
	}
}

func TestUtilitySubaccount_SlugRoundTrip(t *testing.T) {
	id := SubaccountIDFromSlug(testAddress, "inj-usdt")
	if id == "" {
		t.Fatal("SubaccountIDFromSlug returned empty id")
	}
	if len(id) != 66 {
		t.Fatalf("expected 66 characters, got %d", len(id))
	}
	if got := SlugFromSubaccountID(id); got != "inj-usdt" {
		t.Errorf("SlugFromSubaccountID = %q; want %q", got, "inj-usdt")
	}
}
