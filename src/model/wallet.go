package model

// WalletAddress is a user-saved withdrawal/receive address for an asset.
// Only verified addresses satisfy the buy-order preflight.
type WalletAddress struct {
	Asset    string `json:"asset"`
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
}

// FirstVerified returns the first verified address for the asset, if any.
func FirstVerified(addresses []WalletAddress, asset string) (WalletAddress, bool) {
	for _, a := range addresses {
		if a.Asset == asset && a.Verified {
			return a, true
		}
	}
	return WalletAddress{}, false
}
